package ring

import "github.com/planargraph/topology/internal/store"

// HealResult reports what the face healer decided and did.
type HealResult struct {
	Merged    bool
	Survivor  store.FaceID
	Destroyed []store.FaceID
	Created   bool
}

// HealFace implements spec §4.6: given the two faces an edge separated
// before its removal, determines the surviving face and folds every
// reference to the losing face(s) into it. left == right means no merge
// happened (the edge bounded the same face on both sides). If either side
// is the universe, the universe survives. Otherwise the right face
// survives when newFace is false ("mod-face" heal reuses the right face,
// matching the floodface right-face bias named in spec §9), or a freshly
// allocated face survives when newFace is true.
func HealFace(s *store.Store, left, right store.FaceID, newFace bool) HealResult {
	if left == right {
		return HealResult{}
	}

	if left == store.UniverseFace || right == store.UniverseFace {
		loser := left
		if loser == store.UniverseFace {
			loser = right
		}
		RenameFace(s, loser, store.UniverseFace)
		s.RemoveFace(loser)
		return HealResult{Merged: true, Survivor: store.UniverseFace, Destroyed: []store.FaceID{loser}}
	}

	if !newFace {
		RenameFace(s, left, right)
		reindexUnion(s, right, left)
		s.RemoveFace(left)
		return HealResult{Merged: true, Survivor: right, Destroyed: []store.FaceID{left}}
	}

	survivor := s.NewFaceID()
	bound, _ := s.FaceBounds(left)
	if rb, ok := s.FaceBounds(right); ok {
		bound = bound.Union(rb)
	}
	s.AddFace(&store.Face{ID: survivor}, bound)
	RenameFace(s, left, survivor)
	RenameFace(s, right, survivor)
	s.RemoveFace(left)
	s.RemoveFace(right)
	return HealResult{Merged: true, Survivor: survivor, Destroyed: []store.FaceID{left, right}, Created: true}
}

func reindexUnion(s *store.Store, keep, absorbed store.FaceID) {
	kb, kok := s.FaceBounds(keep)
	ab, aok := s.FaceBounds(absorbed)
	switch {
	case kok && aok:
		s.ReindexFace(keep, kb.Union(ab))
	case aok:
		s.ReindexFace(keep, ab)
	}
}
