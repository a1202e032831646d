package graph

import "github.com/Pqvqn/GraphBrainstormExperiments/internal/model"

// propagate applies one contribution of a tagged post to ancestor and walks
// further up the reply tree while the change keeps rippling.
//
// A step only continues past an ancestor that is itself tagged and has a
// parent, and only when that ancestor's formality moved into or out of
// Canon. Transitions into or out of Suppress stop the walk.
func propagate(ancestor *model.Post, contributor model.Auxiliary, upgrade bool) {
	for ancestor != nil {
		pre := ancestor.Formality()

		delta := -1
		if upgrade {
			delta = 1
		}
		switch contributor {
		case model.Canon:
			ancestor.CanonScore += delta
		case model.Suppress:
			ancestor.SuppressScore += delta
		}

		post := ancestor.Formality()
		if ancestor.Auxiliary == model.Neutral || ancestor.Parent == nil {
			return
		}

		switch {
		case pre != model.Canon && post == model.Canon:
			upgrade = true
		case pre == model.Canon && post != model.Canon:
			upgrade = false
		default:
			return
		}

		contributor = ancestor.Auxiliary
		ancestor = ancestor.Parent
	}
}
