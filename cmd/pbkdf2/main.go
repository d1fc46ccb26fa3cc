// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package main

import "zntr.io/pbkdf2/internal/cmd"

func main() {
	cmd.Execute()
}
