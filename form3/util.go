package form3

import "github.com/romly/pmesh/form3/must3"

type (
	ThreadParms = must3.ThreadParms
	SpringParms = must3.SpringParms
	Coil        = must3.Coil
	Origin      = must3.Origin
)

const (
	OriginCenter = must3.OriginCenter
	OriginBottom = must3.OriginBottom
	OriginApex   = must3.OriginApex
	OriginTop    = must3.OriginTop
	OriginMiddle = must3.OriginMiddle
)
