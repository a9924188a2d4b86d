package warehouse

import "github.com/tordrt/birdmap/internal/schema"

// bankCatalog mirrors a small two-table banking database
func bankCatalog(dbID string) *schema.Catalog {
	return &schema.Catalog{
		DBID: dbID,
		Tables: []schema.Table{
			{
				Name: "customers",
				Columns: []schema.Column{
					{Name: "customer_id", DeclaredType: "INTEGER", IsPrimaryKey: true},
					{Name: "name", DeclaredType: "TEXT"},
				},
				RowCount: 3,
			},
			{
				Name: "accounts",
				Columns: []schema.Column{
					{Name: "account_id", DeclaredType: "INTEGER", IsPrimaryKey: true},
					{Name: "customer_id", DeclaredType: "INTEGER"},
					{Name: "balance", DeclaredType: "DECIMAL(15,2)"},
				},
				ForeignKeys: []schema.ForeignKey{
					{SourceColumn: "customer_id", TargetTable: "customers", TargetColumn: "customer_id"},
				},
				RowCount: 4,
			},
		},
	}
}
