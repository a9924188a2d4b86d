package warehouse

import (
	"strings"
	"testing"
)

func TestColumnMappings(t *testing.T) {
	accounts := bankCatalog("city_bank").Tables[1]
	got := ColumnMappings(accounts)

	if len(got) != 3 {
		t.Fatalf("ColumnMappings() returned %d, want 3", len(got))
	}

	want := []ColumnMapping{
		{Position: 0, Source: "account_id", Target: "ACCOUNT_ID", DeclaredType: "INTEGER", TargetType: TypeInteger, PrimaryKey: true},
		{Position: 1, Source: "customer_id", Target: "CUSTOMER_ID", DeclaredType: "INTEGER", TargetType: TypeInteger,
			ForeignKey: true, ForeignTable: "customers", ForeignColumn: "customer_id"},
		{Position: 2, Source: "balance", Target: "BALANCE", DeclaredType: "DECIMAL(15,2)", TargetType: "DECIMAL(15,2)"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mapping %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCopyInto(t *testing.T) {
	tests := []struct {
		stage, file string
		wantFrom    string
	}{
		{"bird_stage", "accounts.csv", "FROM @bird_stage/accounts.csv"},
		{"@bird_stage/", "/accounts.csv", "FROM @bird_stage/accounts.csv"},
		{"@db.schema.stage/city_bank", "accounts.csv", "FROM @db.schema.stage/city_bank/accounts.csv"},
	}

	for _, tt := range tests {
		got := CopyInto("CITY_BANK_ACCOUNTS", tt.stage, tt.file)
		if !strings.HasPrefix(got, "COPY INTO CITY_BANK_ACCOUNTS\n") {
			t.Errorf("CopyInto() head wrong:\n%s", got)
		}
		if !strings.Contains(got, tt.wantFrom) {
			t.Errorf("CopyInto() missing %q:\n%s", tt.wantFrom, got)
		}
		if !strings.Contains(got, "SKIP_HEADER = 1") {
			t.Errorf("CopyInto() should skip the header row:\n%s", got)
		}
	}
}
