package ch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"yukbul/internal/platform/testkit"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

func TestOpen_Validation(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "  "}); err == nil {
		t.Fatalf("empty url should fail")
	}
	if _, err := Open(context.Background(), Config{URL: "clickhouse://h:9000?dial_timeout=notaduration"}); err == nil {
		t.Fatalf("bad dsn should fail")
	}
}

func TestOpen_StampsClientInfo(t *testing.T) {
	testkit.Serial(t)

	var seen *clickhouse.Options
	testkit.Swap(t, &openConn, func(o *clickhouse.Options) (driver.Conn, error) {
		seen = o
		return nil, errors.New("no server")
	})

	_, err := Open(context.Background(), Config{
		URL:      "clickhouse://default:@127.0.0.1:9000/yukbul",
		Role:     "yukbul-api",
		Tag:      "test",
		MaxConns: 3,
		LZ4:      true,
	})
	if err == nil || seen == nil {
		t.Fatalf("openConn not reached err=%v", err)
	}
	if seen.Auth.Database != "yukbul" || seen.MaxOpenConns != 3 || seen.MaxIdleConns > 3 {
		t.Fatalf("options = %+v", seen)
	}
	if seen.Compression == nil || seen.Compression.Method != clickhouse.CompressionLZ4 {
		t.Fatalf("compression = %+v", seen.Compression)
	}
	var names []string
	for _, p := range seen.ClientInfo.Products {
		names = append(names, p.Name+"="+p.Version)
	}
	joined := strings.Join(names, ",")
	if !strings.Contains(joined, "yukbul=test@") || !strings.Contains(joined, "role=yukbul-api") {
		t.Fatalf("client info = %s", joined)
	}
}

func TestInsertSQL(t *testing.T) {
	if got := insertSQL("listing_events", []string{"at", "reason"}); got != "INSERT INTO listing_events (at, reason)" {
		t.Fatalf("insertSQL = %q", got)
	}
	if got := insertSQL("t", nil); got != "INSERT INTO t" {
		t.Fatalf("insertSQL bare = %q", got)
	}
}

func TestNilClient(t *testing.T) {
	var c *CH
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("nil ping should fail")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}

func TestClientInfo_Blank(t *testing.T) {
	ci := clientInfo(" ", "")
	if ci.Products[1].Version != "unknown" || !strings.HasPrefix(ci.Products[0].Version, "unknown@") {
		t.Fatalf("client info = %+v", ci.Products)
	}
}
