package catalog_repo

import (
	"strings"
	"testing"

	"factura/internal/core/id"
	"factura/internal/domain/filter"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](
		nil,
		"test_table",
		[]string{"id", "tenant_id", "col1"},
		[]string{"col1"},
		func() any { return nil },
	)
}

func TestBaseSelect_IsTenantScoped(t *testing.T) {
	repo := newTestRepo()
	tenantID := id.New()

	sql, args, err := repo.baseSelect(tenantID).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(sql, "tenant_id = $1") {
		t.Errorf("query is not tenant-scoped: %s", sql)
	}
	if len(args) != 1 || args[0] != tenantID {
		t.Errorf("tenant argument mismatch: %v", args)
	}
}

func TestApplyAdvancedFilters_Operators(t *testing.T) {
	repo := newTestRepo()
	tenantID := id.New()

	tests := []struct {
		name     string
		item     filter.Item
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Greater",
			item:     filter.Item{Field: "col1", Operator: filter.Greater, Value: 10},
			wantSQL:  "SELECT id, tenant_id, col1 FROM test_table WHERE tenant_id = $1 AND col1 > $2",
			wantArgs: []any{tenantID, 10},
		},
		{
			name:     "Less",
			item:     filter.Item{Field: "col1", Operator: filter.Less, Value: 5},
			wantSQL:  "SELECT id, tenant_id, col1 FROM test_table WHERE tenant_id = $1 AND col1 < $2",
			wantArgs: []any{tenantID, 5},
		},
		{
			name:     "Contains",
			item:     filter.Item{Field: "col1", Operator: filter.Contains, Value: "abc"},
			wantSQL:  "SELECT id, tenant_id, col1 FROM test_table WHERE tenant_id = $1 AND col1 ILIKE $2",
			wantArgs: []any{tenantID, "%abc%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseQ := repo.baseSelect(tenantID)
			q, err := repo.applyAdvancedFilters(baseQ, []filter.Item{tt.item})
			if err != nil {
				t.Fatalf("applyAdvancedFilters failed: %v", err)
			}

			sql, args, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args count mismatch\nwant: %d\ngot:  %d", len(tt.wantArgs), len(args))
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("arg %d mismatch\nwant: %v\ngot:  %v", i, tt.wantArgs[i], args[i])
				}
			}
		})
	}
}

func TestApplyAdvancedFilters_RejectsUnknownColumn(t *testing.T) {
	repo := newTestRepo()

	_, err := repo.applyAdvancedFilters(
		repo.baseSelect(id.New()),
		[]filter.Item{{Field: "evil; DROP TABLE", Operator: filter.Equal, Value: 1}},
	)
	if err == nil {
		t.Fatal("expected validation error for unknown column")
	}
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "name ASC"},
		{in: "col1", want: "col1 ASC"},
		{in: "-col1", want: "col1 DESC"},
		{in: "+created_at", want: "created_at ASC"},
		{in: "unknown_col", wantErr: true},
		{in: "-", wantErr: true},
	}

	for _, tt := range tests {
		got, err := repo.parseOrderBy(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseOrderBy(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseOrderBy(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseOrderBy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
