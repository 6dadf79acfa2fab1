package processor

import (
	"context"
	"reflect"
	"testing"
)

func noop() Processor {
	return Func(func(ctx context.Context, config map[string]any) (Result, error) {
		return Result{}, nil
	})
}

func TestRegistry_Register(t *testing.T) {
	tests := []struct {
		name      string
		procName  string
		processor Processor
		wantErr   bool
	}{
		{name: "valid", procName: "cleanup", processor: noop(), wantErr: false},
		{name: "empty name", procName: "", processor: noop(), wantErr: true},
		{name: "nil processor", procName: "cleanup", processor: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			err := registry.Register(tt.procName, tt.processor)
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register("cleanup", noop()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := registry.Register("cleanup", noop()); err == nil {
		t.Error("expected error registering duplicate name")
	}
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry()
	want := noop()
	if err := registry.Register("financial", want); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, ok := registry.Get("financial"); !ok {
		t.Error("Get(financial) reported missing")
	}
	if _, ok := registry.Get("unknown"); ok {
		t.Error("Get(unknown) reported present")
	}
}

func TestRegistry_Names(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"maintenance", "cleanup", "financial"} {
		if err := registry.Register(name, noop()); err != nil {
			t.Fatalf("Register(%s) failed: %v", name, err)
		}
	}

	want := []string{"cleanup", "financial", "maintenance"}
	if got := registry.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestDefault(t *testing.T) {
	result, err := Default().Process(context.Background(), map[string]any{"anything": true})
	if err != nil {
		t.Fatalf("default processor returned error: %v", err)
	}
	if result.RecordsProcessed != 0 || len(result.Errors) != 0 {
		t.Errorf("default processor result = %+v, want zero result", result)
	}
}
