package postgrest

import (
	"net/http"
	"reflect"
	"strings"
	"testing"
)

func TestPreSelect(t *testing.T) {
	tests := []struct {
		name       string
		columns    []string
		opts       queryOptions
		wantSelect string
		wantPrefer string
	}{
		{
			name:       "no columns selects all",
			columns:    nil,
			wantSelect: "",
		},
		{
			name:       "columns joined",
			columns:    []string{"id", "name"},
			wantSelect: "id,name",
		},
		{
			name:       "spaces stripped",
			columns:    []string{" id ", "name"},
			wantSelect: "id,name",
		},
		{
			name:       "count preference",
			columns:    []string{"id"},
			opts:       queryOptions{count: CountExact},
			wantSelect: "id",
			wantPrefer: "count=exact",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := preSelect("articles", http.Header{}, tt.columns, tt.opts)

			if desc.Method != http.MethodGet {
				t.Errorf("method = %q, want GET", desc.Method)
			}
			if got := desc.Params.Get("select"); got != tt.wantSelect {
				t.Errorf("select param = %q, want %q", got, tt.wantSelect)
			}
			if got := desc.Headers.Get("Prefer"); got != tt.wantPrefer {
				t.Errorf("Prefer = %q, want %q", got, tt.wantPrefer)
			}
		})
	}
}

func TestCountMethodIsValid(t *testing.T) {
	for _, m := range []CountMethod{CountExact, CountPlanned, CountEstimated} {
		if !m.IsValid() {
			t.Errorf("%q reported invalid", m)
		}
	}
	for _, m := range []CountMethod{"", "exat", "EXACT", "none"} {
		if m.IsValid() {
			t.Errorf("%q reported valid", m)
		}
	}
}

func TestPreSelectIsPure(t *testing.T) {
	a := preSelect("articles", http.Header{}, []string{"id", "name"}, queryOptions{count: CountPlanned})
	b := preSelect("articles", http.Header{}, []string{"id", "name"}, queryOptions{count: CountPlanned})

	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical arguments produced different descriptors:\n%#v\n%#v", a, b)
	}
}

func TestPreInsert(t *testing.T) {
	tests := []struct {
		name       string
		opts       queryOptions
		wantPrefer string
	}{
		{
			name:       "default returns representation",
			opts:       queryOptions{returning: ReturnRepresentation},
			wantPrefer: "return=representation",
		},
		{
			name:       "minimal",
			opts:       queryOptions{returning: ReturnMinimal},
			wantPrefer: "return=minimal",
		},
		{
			name:       "upsert adds resolution",
			opts:       queryOptions{returning: ReturnRepresentation, upsert: true},
			wantPrefer: "return=representation,resolution=merge-duplicates",
		},
		{
			name:       "count and missing defaults",
			opts:       queryOptions{returning: ReturnRepresentation, count: CountExact, missingDefault: true},
			wantPrefer: "return=representation,count=exact,missing=default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := preInsert("articles", http.Header{}, map[string]any{"a": 1}, tt.opts)

			if desc.Method != http.MethodPost {
				t.Errorf("method = %q, want POST", desc.Method)
			}
			if got := desc.Headers.Get("Prefer"); got != tt.wantPrefer {
				t.Errorf("Prefer = %q, want %q", got, tt.wantPrefer)
			}
		})
	}
}

func TestPreUpsert(t *testing.T) {
	tests := []struct {
		name           string
		opts           queryOptions
		wantResolution string
		wantOnConflict string
	}{
		{
			name:           "merge by default",
			opts:           queryOptions{returning: ReturnRepresentation},
			wantResolution: "resolution=merge-duplicates",
		},
		{
			name:           "ignore duplicates",
			opts:           queryOptions{returning: ReturnRepresentation, ignoreDuplicates: true},
			wantResolution: "resolution=ignore-duplicates",
		},
		{
			name:           "on conflict target",
			opts:           queryOptions{returning: ReturnRepresentation, onConflict: "slug"},
			wantResolution: "resolution=merge-duplicates",
			wantOnConflict: "slug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := preUpsert("articles", http.Header{}, map[string]any{"a": 1}, tt.opts)

			if desc.Method != http.MethodPost {
				t.Errorf("method = %q, want POST", desc.Method)
			}
			prefer := desc.Headers.Get("Prefer")
			if !strings.Contains(prefer, tt.wantResolution) {
				t.Errorf("Prefer = %q, want it to contain %q", prefer, tt.wantResolution)
			}
			if got := desc.Params.Get("on_conflict"); got != tt.wantOnConflict {
				t.Errorf("on_conflict = %q, want %q", got, tt.wantOnConflict)
			}
		})
	}
}

func TestPreUpdateAndDelete(t *testing.T) {
	update := preUpdate("articles", http.Header{}, map[string]any{"a": 1}, queryOptions{returning: ReturnRepresentation})
	if update.Method != http.MethodPatch {
		t.Errorf("update method = %q, want PATCH", update.Method)
	}
	if update.Body == nil {
		t.Error("update descriptor lost its body")
	}

	del := preDelete("articles", http.Header{}, queryOptions{returning: ReturnMinimal, count: CountEstimated})
	if del.Method != http.MethodDelete {
		t.Errorf("delete method = %q, want DELETE", del.Method)
	}
	if got, want := del.Headers.Get("Prefer"), "return=minimal,count=estimated"; got != want {
		t.Errorf("Prefer = %q, want %q", got, want)
	}
	if del.Body != nil {
		t.Error("delete descriptor should carry no body")
	}
}
