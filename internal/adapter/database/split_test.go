package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSQLCommands(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{
			name: "dois comandos",
			sql:  "CREATE TABLE a (id int);\nCREATE TABLE b (id int);",
			want: []string{"CREATE TABLE a (id int);", "CREATE TABLE b (id int);"},
		},
		{
			name: "ponto e vírgula em string",
			sql:  "INSERT INTO a VALUES ('x;y');",
			want: []string{"INSERT INTO a VALUES ('x;y');"},
		},
		{
			name: "comentários descartados",
			sql:  "-- cabeçalho; com ponto e vírgula\n/* bloco; */SELECT 1;",
			want: []string{"SELECT 1;"},
		},
		{
			name: "apenas comentários",
			sql:  "-- nova_tabela\n-- criada em 2025-01-01T00:00:00Z\n",
			want: nil,
		},
		{
			name: "último comando sem ponto e vírgula",
			sql:  "SELECT 1;\nSELECT 2",
			want: []string{"SELECT 1;", "SELECT 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSQLCommands(tt.sql))
		})
	}
}
