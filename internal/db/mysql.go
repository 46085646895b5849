package db

import (
	"context"
	"database/sql"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"parsefile/internal/config"
)

// DSN builds the driver DSN from config.
func DSN(cfg *config.Config) string {
	mc := mysql.NewConfig()
	mc.User = cfg.MySQLUser
	mc.Passwd = cfg.MySQLPassword
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.MySQLHost, strconv.Itoa(cfg.MySQLPort))
	mc.DBName = cfg.MySQLDB
	mc.ParseTime = true
	mc.Collation = "utf8mb4_unicode_ci"
	mc.Timeout = cfg.ConnectTimeout
	mc.ReadTimeout = cfg.QueryTimeout
	mc.WriteTimeout = cfg.QueryTimeout
	return mc.FormatDSN()
}

func Open(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
