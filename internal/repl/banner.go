package repl

import (
	"github.com/msto63/acid/pkg/core/version"
)

const header = `
       ____,──┬───────._
      ╱  '  _╱    │     ╲
    ╱   ,  ╱ ╲__  │  __╱ ╲
   ╱ ` + "`" + `    │     ╲_│_╱     │
  │   ' . │______╱ ╲______│
  │'  .   │     ╱╲ ╱╲     │
   ╲   .  │    ╱  │  │    │
    ╲  ,   ╲ _╱   │   ╲ _╱
      ╲  .  '╲_   │   _╱
       '───.____╲_│__╱

`

// Banner is printed when an interactive session starts
func Banner() string {
	return header + "\n" + version.String() + "\nType :help for a list of commands.\n"
}
