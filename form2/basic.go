// Package form2 generates the 2d outlines parts are swept from.
// Functions return an error instead of panicking on invalid parameters.
package form2

import "fmt"

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}
