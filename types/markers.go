package types

import (
	"fmt"
	"strings"
)

// BCFLAG classifies a mesh marker by the structural condition it carries.
type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Fixed
	BC_Symmetry
	BC_Load
	BC_Free
	BC_Periodic
)

var bcFlagNames = []string{"BC_None", "BC_Fixed", "BC_Symmetry", "BC_Load", "BC_Free", "BC_Periodic"}

func (bf BCFLAG) String() string {
	if int(bf) < len(bcFlagNames) {
		return bcFlagNames[bf]
	}
	return fmt.Sprintf("BCFLAG(%d)", bf)
}

var BCNameMap = map[string]BCFLAG{
	"fixed":    BC_Fixed,
	"clamped":  BC_Fixed,
	"wall":     BC_Fixed,
	"symmetry": BC_Symmetry,
	"sym":      BC_Symmetry,
	"load":     BC_Load,
	"traction": BC_Load,
	"free":     BC_Free,
	"periodic": BC_Periodic,
}

/*
BCTAG is a marker name as it appears in a mesh file. Names of the form
"<flag>-<label>" carry their condition in the prefix, e.g. "Fixed-left".
A name without a known prefix has flag BC_None and is its own label.
*/
type BCTAG string

func NewBCTAG(token string) (bt BCTAG) {
	bt = BCTAG(strings.TrimSpace(token))
	return
}

func (bt BCTAG) split() (flag BCFLAG, label string) {
	var (
		name   = string(bt)
		prefix = name
	)
	if ind := strings.Index(name, "-"); ind >= 0 {
		prefix, label = name[:ind], name[ind+1:]
	}
	var ok bool
	if flag, ok = BCNameMap[strings.ToLower(prefix)]; !ok {
		flag, label = BC_None, name
	}
	return
}

func (bt BCTAG) GetFLAG() (flag BCFLAG) {
	flag, _ = bt.split()
	return
}

func (bt BCTAG) GetLabel() (label string) {
	_, label = bt.split()
	return
}
