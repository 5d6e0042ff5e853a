package bot

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nextlevelbuilder/pbgate/internal/driver"
	"github.com/nextlevelbuilder/pbgate/internal/driver/drivertest"
	"github.com/nextlevelbuilder/pbgate/internal/errs"
	"github.com/nextlevelbuilder/pbgate/internal/plugin"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	store := plugin.NewStore(filepath.Join(t.TempDir(), "plugins"))
	return NewRegistry(store, newDispatcher())
}

func TestRegistryOnLogin(t *testing.T) {
	r := newRegistry(t)
	client := drivertest.New(10001)

	if err := r.OnLogin(context.Background(), client, driver.TokenCredential{Token: []byte("t")}); err != nil {
		t.Fatalf("OnLogin: %v", err)
	}
	if len(client.CallsOf("AfterLogin")) != 1 {
		t.Error("AfterLogin not invoked")
	}

	infos := r.List()
	if len(infos) != 1 || infos[0].Uin != 10001 {
		t.Fatalf("List: %+v", infos)
	}
	if infos[0].Nick == "" {
		t.Error("nick not projected")
	}
}

func TestRegistryReplacesPriorBot(t *testing.T) {
	r := newRegistry(t)
	first := drivertest.New(10001)
	second := drivertest.New(10001)

	if err := r.OnLogin(context.Background(), first, driver.TokenCredential{}); err != nil {
		t.Fatal(err)
	}
	if err := r.OnLogin(context.Background(), second, driver.TokenCredential{}); err != nil {
		t.Fatal(err)
	}

	if !first.Stopped() {
		t.Error("prior bot's driver not stopped")
	}
	if second.Stopped() {
		t.Error("new bot's driver stopped")
	}
	if infos := r.List(); len(infos) != 1 {
		t.Errorf("List has %d entries, want 1", len(infos))
	}
}

func TestRegistryDeleteAndReAdd(t *testing.T) {
	r := newRegistry(t)
	client := drivertest.New(10001)
	if err := r.OnLogin(context.Background(), client, driver.TokenCredential{}); err != nil {
		t.Fatal(err)
	}

	if err := r.Delete(10001); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !client.Stopped() {
		t.Error("driver not stopped on delete")
	}
	if infos := r.List(); len(infos) != 0 {
		t.Errorf("List not empty after delete: %+v", infos)
	}
	if err := r.Delete(10001); !errors.Is(err, errs.ErrBotNotFound) {
		t.Errorf("second delete: %v, want ErrBotNotFound", err)
	}

	// A deleted uin can log in again.
	again := drivertest.New(10001)
	if err := r.OnLogin(context.Background(), again, driver.TokenCredential{}); err != nil {
		t.Fatalf("re-add after delete: %v", err)
	}
	if infos := r.List(); len(infos) != 1 {
		t.Errorf("List after re-add: %+v", infos)
	}
}

func TestRegistryStopAll(t *testing.T) {
	r := newRegistry(t)
	a := drivertest.New(1)
	b := drivertest.New(2)
	if err := r.OnLogin(context.Background(), a, driver.TokenCredential{}); err != nil {
		t.Fatal(err)
	}
	if err := r.OnLogin(context.Background(), b, driver.TokenCredential{}); err != nil {
		t.Fatal(err)
	}

	r.StopAll()
	if !a.Stopped() || !b.Stopped() {
		t.Error("not all drivers stopped")
	}
	if infos := r.List(); len(infos) != 0 {
		t.Errorf("List after StopAll: %+v", infos)
	}
}
