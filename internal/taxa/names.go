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

package taxa

var (
	// names is an array of user-visible names of all of the productions in this
	// package.
	names = [...]string{
		Unknown: "<unknown>",

		Ident:    "identifier",
		String:   "string",
		Number:   "number",
		Array:    "array",
		Dict:     "dictionary",
		KeyValue: "key-value pair",

		Period:     "`.`",
		LParen:     "`(`",
		Plus:       "`+`",
		Comma:      "`,`",
		Colon:      "`:`",
		Equals:     "`=`",
		PlusEquals: "`+=`",

		RParen:      "`)`",
		RBracket:    "`]`",
		RBrace:      "`}`",
		Quote:       "`'`",
		TripleQuote: "`'''`",

		Newline: "newline",
		EOF:     "end-of-file",
	}
)
