package goshape

// Closed unions with compile-time exhaustive dispatch.
//
// A UnionN can only be inspected through MatchN or VisitN, which take exactly
// one handler per member. Adding a member means moving to Union(N+1), and every
// dispatch site written against UnionN stops compiling until it handles the
// new member. The zero value of a union holds the zero value of its first
// member.

// Never has no values other than nil: its method is unexported and nothing in
// this package implements it.
type Never interface{ never() }

// AssertExhaustive marks the tail of a hand-written dispatch whose remaining
// cases have been narrowed to Never. It panics if a non-nil Never is ever
// produced, which the type system rules out.
func AssertExhaustive(remaining Never) {
	if remaining != nil {
		panic("goshape: non-exhaustive dispatch reached")
	}
}

// Union2 holds exactly one of A or B.
type Union2[A, B any] struct {
	idx uint8
	a   A
	b   B
}

func First2[A, B any](a A) Union2[A, B]  { return Union2[A, B]{idx: 0, a: a} }
func Second2[A, B any](b B) Union2[A, B] { return Union2[A, B]{idx: 1, b: b} }

// Index returns the zero-based member position.
func (u Union2[A, B]) Index() int { return int(u.idx) }

func Match2[A, B, R any](u Union2[A, B], onA func(A) R, onB func(B) R) R {
	if u.idx == 1 {
		return onB(u.b)
	}
	return onA(u.a)
}

func Visit2[A, B any](u Union2[A, B], onA func(A), onB func(B)) {
	Match2(u, func(a A) struct{} { onA(a); return struct{}{} }, func(b B) struct{} { onB(b); return struct{}{} })
}

// Union3 holds exactly one of A, B or C.
type Union3[A, B, C any] struct {
	idx uint8
	a   A
	b   B
	c   C
}

func First3[A, B, C any](a A) Union3[A, B, C]  { return Union3[A, B, C]{idx: 0, a: a} }
func Second3[A, B, C any](b B) Union3[A, B, C] { return Union3[A, B, C]{idx: 1, b: b} }
func Third3[A, B, C any](c C) Union3[A, B, C]  { return Union3[A, B, C]{idx: 2, c: c} }

func (u Union3[A, B, C]) Index() int { return int(u.idx) }

func Match3[A, B, C, R any](u Union3[A, B, C], onA func(A) R, onB func(B) R, onC func(C) R) R {
	switch u.idx {
	case 1:
		return onB(u.b)
	case 2:
		return onC(u.c)
	}
	return onA(u.a)
}

func Visit3[A, B, C any](u Union3[A, B, C], onA func(A), onB func(B), onC func(C)) {
	Match3(u,
		func(a A) struct{} { onA(a); return struct{}{} },
		func(b B) struct{} { onB(b); return struct{}{} },
		func(c C) struct{} { onC(c); return struct{}{} },
	)
}

// Union4 holds exactly one of A, B, C or D.
type Union4[A, B, C, D any] struct {
	idx uint8
	a   A
	b   B
	c   C
	d   D
}

func First4[A, B, C, D any](a A) Union4[A, B, C, D]  { return Union4[A, B, C, D]{idx: 0, a: a} }
func Second4[A, B, C, D any](b B) Union4[A, B, C, D] { return Union4[A, B, C, D]{idx: 1, b: b} }
func Third4[A, B, C, D any](c C) Union4[A, B, C, D]  { return Union4[A, B, C, D]{idx: 2, c: c} }
func Fourth4[A, B, C, D any](d D) Union4[A, B, C, D] { return Union4[A, B, C, D]{idx: 3, d: d} }

func (u Union4[A, B, C, D]) Index() int { return int(u.idx) }

func Match4[A, B, C, D, R any](u Union4[A, B, C, D], onA func(A) R, onB func(B) R, onC func(C) R, onD func(D) R) R {
	switch u.idx {
	case 1:
		return onB(u.b)
	case 2:
		return onC(u.c)
	case 3:
		return onD(u.d)
	}
	return onA(u.a)
}

func Visit4[A, B, C, D any](u Union4[A, B, C, D], onA func(A), onB func(B), onC func(C), onD func(D)) {
	Match4(u,
		func(a A) struct{} { onA(a); return struct{}{} },
		func(b B) struct{} { onB(b); return struct{}{} },
		func(c C) struct{} { onC(c); return struct{}{} },
		func(d D) struct{} { onD(d); return struct{}{} },
	)
}
