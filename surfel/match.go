package surfel

// match compares one surfel inside the frustum with the scan cell it
// projects to.
func (m *Mapper) match(p *ScenePoint, vf *viewFrame, st *Stats) {
	st.SurfelsInFrustum++

	pc := vf.WorldToCamera(p.Position)
	if pc[2] <= 0 {
		st.InvalidReading++
		return
	}
	u, v := m.cfg.Intrinsics.Project(pc)
	st.addProjection(u, v)

	scan, cell, status := lookupGrid(m.cam, vf.width, vf.height, u, v)
	switch status {
	case gridOutside:
		st.InvalidReading++
		return
	case gridInvalid:
		st.SurfelsProjected++
		st.InvalidReading++
		return
	}
	st.SurfelsProjected++

	dmax := m.cfg.MatchThreshold
	switch delta := scan - pc[2]; {
	case -dmax <= delta && delta <= dmax:
		m.covered[cell] = true
		st.Updated++
	case delta > dmax:
		m.covered[cell] = true
		st.TooFar++
	default:
		st.TooClose++
	}
}
