package rule

import (
	"verdict/internal/diag"
)

type funcRule struct {
	id          string
	descriptors []diag.Descriptor
	init        func(Registrar)
}

func (r *funcRule) ID() string                     { return r.id }
func (r *funcRule) Descriptors() []diag.Descriptor { return r.descriptors }
func (r *funcRule) Init(reg Registrar)             { r.init(reg) }

// New builds a Rule from plain values, for rules that do not need a
// type of their own (tests, one-off checks).
func New(id string, descriptors []diag.Descriptor, init func(Registrar)) Rule {
	return &funcRule{id: id, descriptors: descriptors, init: init}
}
