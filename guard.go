package goshape

import "slices"

// Predicate recognizes one variant.
type Predicate[V any] struct {
	Tag   Tag
	Match func(V) bool
}

// When builds a predicate for tag.
func When[V any](tag Tag, match func(V) bool) Predicate[V] {
	return Predicate[V]{Tag: tag, Match: match}
}

// Classify evaluates preds in order and returns the tag of the first match.
// In Strict mode every predicate is evaluated and more than one match is an
// AmbiguousVariantError. A predicate with a nil Match never matches.
func Classify[V any](v V, mode Mode, preds ...Predicate[V]) (Tag, error) {
	var matched []Tag
	for _, p := range preds {
		if p.Match == nil || !p.Match(v) {
			continue
		}
		if mode != Strict {
			return p.Tag, nil
		}
		matched = append(matched, p.Tag)
	}
	switch len(matched) {
	case 0:
		tried := make([]Tag, len(preds))
		for i, p := range preds {
			tried[i] = p.Tag
		}
		return "", &NoMatchingVariantError{Tried: tried}
	case 1:
		return matched[0], nil
	default:
		return "", &AmbiguousVariantError{Matched: matched}
	}
}

// Classifier is a fixed, ordered predicate list with a mode.
type Classifier[V any] struct {
	mode  Mode
	preds []Predicate[V]
}

// NewClassifier copies preds; later changes to the caller's slice are not
// observed.
func NewClassifier[V any](mode Mode, preds ...Predicate[V]) *Classifier[V] {
	return &Classifier[V]{mode: mode, preds: slices.Clone(preds)}
}

func (c *Classifier[V]) Mode() Mode { return c.mode }

// Tags returns the predicate tags in declaration order.
func (c *Classifier[V]) Tags() []Tag {
	out := make([]Tag, len(c.preds))
	for i, p := range c.preds {
		out[i] = p.Tag
	}
	return out
}

func (c *Classifier[V]) Classify(v V) (Tag, error) { return Classify(v, c.mode, c.preds...) }

// Guard starts narrowing v.
func (c *Classifier[V]) Guard(v V) *Guard[V] { return &Guard[V]{value: v, classifier: c} }

// State is a position in the narrowing state machine.
type State int

const (
	Unclassified State = iota
	Classified
	Accessed
	Rejected
)

func (s State) String() string {
	switch s {
	case Unclassified:
		return "unclassified"
	case Classified:
		return "classified"
	case Accessed:
		return "accessed"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool { return s == Accessed || s == Rejected }

// Guard withholds a value until it has been classified and its variant is
// authorized. Transitions run one way only:
//
//	Unclassified -> Classified(tag) -> Accessed
//	Unclassified -> Rejected(err)
//	Classified   -> Rejected(err)
type Guard[V any] struct {
	value      V
	classifier *Classifier[V]
	state      State
	tag        Tag
	err        error
}

func (g *Guard[V]) State() State { return g.state }

// Tag returns the decided tag, if any. A guard rejected for lack of capability
// still reports the tag it was classified as.
func (g *Guard[V]) Tag() (Tag, bool) { return g.tag, g.tag != "" }

// Err returns the rejection cause when the guard is Rejected.
func (g *Guard[V]) Err() error { return g.err }

// Classify decides the variant. Calling it again returns the first outcome.
func (g *Guard[V]) Classify() (Tag, error) {
	switch g.state {
	case Classified, Accessed:
		return g.tag, nil
	case Rejected:
		if g.tag != "" {
			return g.tag, nil
		}
		return "", g.err
	}
	tag, err := g.classifier.Classify(g.value)
	if err != nil {
		g.state, g.err = Rejected, err
		return "", err
	}
	g.state, g.tag = Classified, tag
	return tag, nil
}

// Access releases the value when the decided tag is one of allowed. It returns
// ErrUnclassified, without changing state, when Classify has not run. An
// unauthorized tag moves the guard to Rejected with a CapabilityError.
func (g *Guard[V]) Access(allowed ...Tag) (V, error) {
	var zero V
	switch g.state {
	case Unclassified:
		return zero, ErrUnclassified
	case Rejected:
		return zero, g.err
	case Accessed:
		if slices.Contains(allowed, g.tag) {
			return g.value, nil
		}
		return zero, &CapabilityError{Tag: g.tag, Allowed: slices.Clone(allowed)}
	}
	if !slices.Contains(allowed, g.tag) {
		g.state = Rejected
		g.err = &CapabilityError{Tag: g.tag, Allowed: slices.Clone(allowed)}
		return zero, g.err
	}
	g.state = Accessed
	return g.value, nil
}
