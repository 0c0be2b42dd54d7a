package registry_test

import (
	"errors"
	"strconv"
	"testing"

	"assetman/internal/registry"
	"assetman/internal/script"
	"assetman/internal/testsupport"
)

func TestInterfaceLookup(t *testing.T) {
	reg := testsupport.NewRegistry(t, testsupport.NewInterface("T", script.FieldCode))

	iface, err := reg.Interface("T")
	if err != nil {
		t.Fatalf("Interface returned error: %v", err)
	}
	if iface.Tag() != "T" {
		t.Fatalf("unexpected tag %q", iface.Tag())
	}

	_, err = reg.Interface("missing")
	if !errors.Is(err, registry.ErrUnregisteredInterface) {
		t.Fatalf("expected ErrUnregisteredInterface, got %v", err)
	}
	var unregistered *registry.UnregisteredError
	if !errors.As(err, &unregistered) || unregistered.Tag != "missing" {
		t.Fatalf("expected UnregisteredError for tag missing, got %#v", err)
	}
}

func TestRegisterRejectsDuplicateAndEmptyTags(t *testing.T) {
	reg := testsupport.NewRegistry(t, testsupport.NewInterface("T"))

	if err := reg.Register(testsupport.NewInterface("T")); !errors.Is(err, registry.ErrDuplicateTag) {
		t.Fatalf("expected ErrDuplicateTag, got %v", err)
	}
	if err := reg.Register(testsupport.NewInterface("  ")); err == nil {
		t.Fatal("expected error for blank tag")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatal("expected error for nil interface")
	}
}

func TestRegisterMetaScript(t *testing.T) {
	reg := testsupport.NewRegistry(t, testsupport.NewInterface("T"), testsupport.NewInterface("U"))

	testsupport.MustRegisterMeta(t, reg, 1, "T", "a")
	testsupport.MustRegisterMeta(t, reg, 1, "U", "a")
	testsupport.MustRegisterMeta(t, reg, 2, "T", "a")

	if err := reg.RegisterMetaScript(1, "T", "a"); !errors.Is(err, registry.ErrDuplicateMetaScript) {
		t.Fatalf("expected ErrDuplicateMetaScript, got %v", err)
	}
	if err := reg.RegisterMetaScript(1, "V", "a"); !errors.Is(err, registry.ErrUnregisteredInterface) {
		t.Fatalf("expected ErrUnregisteredInterface, got %v", err)
	}

	refs := reg.MetaScripts(1)
	want := []registry.MetaRef{{Tag: "T", ID: "a"}, {Tag: "U", ID: "a"}}
	if len(refs) != len(want) {
		t.Fatalf("unexpected refs: %+v", refs)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Fatalf("ref %d = %+v, want %+v", i, refs[i], want[i])
		}
	}
	if got := reg.MetaScripts(3); len(got) != 0 {
		t.Fatalf("expected no refs for unknown note type, got %+v", got)
	}
}

func TestInstallAll(t *testing.T) {
	reg := testsupport.NewRegistry(t, testsupport.NewInterface("T"))

	err := reg.InstallAll([]int64{10, 20}, "T", func(modelID int64) string {
		return strconv.FormatInt(modelID, 10)
	})
	if err != nil {
		t.Fatalf("InstallAll returned error: %v", err)
	}
	if refs := reg.MetaScripts(20); len(refs) != 1 || refs[0].ID != "20" {
		t.Fatalf("unexpected refs for 20: %+v", refs)
	}
}

func TestCapabilityDefaults(t *testing.T) {
	plain := testsupport.NewInterface("T", script.FieldCode)
	storage := script.Storage{}

	if got := registry.Label(plain, "5", storage); got != "T: 5" {
		t.Fatalf("unexpected default label %q", got)
	}
	if registry.ShouldAutoDelete(plain, "5", storage) {
		t.Fatal("interfaces without AutoDelete must never autodelete")
	}
	if registry.CanReset(plain) {
		t.Fatal("plain interface must not be resettable")
	}
	if got := registry.Generate(plain, "5", storage, registry.GenerateContext{}); got != "// T" {
		t.Fatalf("unexpected generated code %q", got)
	}

	resettable := &testsupport.ResettableInterface{Interface: plain}
	if !registry.CanReset(resettable) {
		t.Fatal("expected resettable interface")
	}

	deleting := &testsupport.AutoDeletingInterface{
		Interface:  plain,
		DeleteFunc: func(id string, _ script.Storage) bool { return id == "old" },
	}
	if !registry.ShouldAutoDelete(deleting, "old", storage) || registry.ShouldAutoDelete(deleting, "new", storage) {
		t.Fatal("AutoDelete callback not honoured")
	}
}

func TestSetResult(t *testing.T) {
	if !registry.Veto().Vetoed() {
		t.Fatal("Veto must be vetoed")
	}
	if registry.Accept().Vetoed() {
		t.Fatal("Accept must not be vetoed")
	}
	if _, ok := registry.Accept().Replacement(); ok {
		t.Fatal("Accept carries no replacement")
	}
	replaced := script.DefaultConcreteScript()
	replaced.Code = "normalized"
	got, ok := registry.Replace(replaced).Replacement()
	if !ok || got.Code != "normalized" {
		t.Fatalf("unexpected replacement %+v (ok=%v)", got, ok)
	}
}
