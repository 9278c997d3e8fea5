package helptext

import _ "embed"

//go:generate cp ../../FUNCTIONS.md .

//go:embed FUNCTIONS.md
var Functions string
