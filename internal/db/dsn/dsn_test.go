package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abrigo-digital/shelter-admin/internal/config"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DB
		want string
	}{
		{
			name: "mysql",
			cfg: config.DB{
				GormEngine: config.EngineMySQL, User: "u", Password: "p", Host: "db", Port: 3306, Name: "shelter",
				Extras: "parseTime=True",
			},
			want: "u:p@tcp(db:3306)/shelter?parseTime=True",
		},
		{
			name: "mysql without extras",
			cfg:  config.DB{GormEngine: config.EngineMySQL, User: "u", Password: "p", Host: "db", Port: 3306, Name: "shelter"},
			want: "u:p@tcp(db:3306)/shelter",
		},
		{
			name: "postgres",
			cfg: config.DB{
				GormEngine: config.EnginePostgres, User: "u", Password: "p", Host: "db", Port: 5432, Name: "shelter",
				Extras: "sslmode=disable",
			},
			want: "host=db port=5432 user=u password=p dbname=shelter sslmode=disable",
		},
		{
			name: "sqlite file",
			cfg:  config.DB{GormEngine: config.EngineSQLite, Path: "/var/lib/shelter.db"},
			want: "/var/lib/shelter.db",
		},
		{
			name: "sqlite memory",
			cfg:  config.DB{GormEngine: config.EngineSQLite},
			want: "file::memory:?cache=shared",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Create(&tt.cfg))
		})
	}
}
