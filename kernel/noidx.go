package kernel

// NoIdxVarImpConf is a degenerate VarImpConfig for variable kinds that
// never need advisors or an index structure beyond the generic
// assigned/failed events (spec.md §9 supplemented features, mirroring
// the original kernel's convenience configuration of the same name).
// Its PCMax is PcGenAssigned, so VarImp's only bucket is "notify on
// assignment", plus the usual trailing advisor bucket.
type NoIdxVarImpConf struct{}

func (NoIdxVarImpConf) IdxC() int     { return 0 }
func (NoIdxVarImpConf) IdxD() int     { return 0 }
func (NoIdxVarImpConf) PCMax() int    { return int(PcGenAssigned) }
func (NoIdxVarImpConf) FreeBits() int { return 0 }

func (NoIdxVarImpConf) MeCombine(me1, me2 ModEvent) ModEvent {
	if me1 > me2 {
		return me1
	}
	return me2
}

func (NoIdxVarImpConf) MedUpdate(med *ModEventDelta, me ModEvent) bool {
	bit := ModEventDelta(1 << uint(me+1))
	if *med&bit != 0 {
		return false
	}
	*med |= bit
	return true
}
