// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func newRootCmd() *cobra.Command {
	var verbose int

	cmd := &cobra.Command{
		Use:   "mesonast",
		Short: "Parse build definition files into syntax trees",
		Long: `mesonast parses files written in the build definition language and prints
their syntax trees as YAML or JSON, with every node annotated with its
position in the source.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			commonlog.Configure(verbose, nil)
		},
	}

	cmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase logging verbosity (repeatable)")

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}
