package testsupport

import (
	"testing"

	"assetman/internal/registry"
	"assetman/internal/script"
)

// Interface is a configurable registry.Interface for tests. Get overlays the
// storage onto Base.
type Interface struct {
	TagName        string
	Base           script.ConcreteScript
	StoreFields    script.FieldSet
	ReadonlyFields script.FieldSet
	SetFunc        func(id string, edited script.ConcreteScript) registry.SetResult
}

// NewInterface returns an interface that accepts every save and stores the
// given fields.
func NewInterface(tag string, store ...script.Field) *Interface {
	base := script.DefaultConcreteScript()
	base.Name = tag
	base.Code = "// " + tag
	return &Interface{
		TagName:     tag,
		Base:        base,
		StoreFields: script.NewFieldSet(store...),
	}
}

func (i *Interface) Tag() string { return i.TagName }

func (i *Interface) Get(_ string, storage script.Storage) script.ConcreteScript {
	return storage.Overlay(i.Base)
}

func (i *Interface) Set(id string, edited script.ConcreteScript) registry.SetResult {
	if i.SetFunc != nil {
		return i.SetFunc(id, edited)
	}
	return registry.Accept()
}

func (i *Interface) Store() script.FieldSet    { return i.StoreFields }
func (i *Interface) Readonly() script.FieldSet { return i.ReadonlyFields }

// ResettableInterface adds the Reset capability.
type ResettableInterface struct {
	*Interface
	ResetFunc func(id string, storage script.Storage) script.ConcreteScript
}

func (r *ResettableInterface) Reset(id string, storage script.Storage) script.ConcreteScript {
	if r.ResetFunc != nil {
		return r.ResetFunc(id, storage)
	}
	return r.Base.Clone()
}

// AutoDeletingInterface adds the AutoDelete capability.
type AutoDeletingInterface struct {
	*Interface
	DeleteFunc func(id string, storage script.Storage) bool
}

func (a *AutoDeletingInterface) AutoDelete(id string, storage script.Storage) bool {
	return a.DeleteFunc(id, storage)
}

// NewRegistry builds a registry holding the given interfaces.
func NewRegistry(t testing.TB, ifaces ...registry.Interface) *registry.Registry {
	t.Helper()

	reg := registry.New()
	for _, iface := range ifaces {
		if err := reg.Register(iface); err != nil {
			t.Fatalf("register %s: %v", iface.Tag(), err)
		}
	}
	return reg
}

// MustRegisterMeta registers (tag, id) as expected on modelID.
func MustRegisterMeta(t testing.TB, reg *registry.Registry, modelID int64, tag, id string) {
	t.Helper()

	if err := reg.RegisterMetaScript(modelID, tag, id); err != nil {
		t.Fatalf("register meta %s/%s: %v", tag, id, err)
	}
}
