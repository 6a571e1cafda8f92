package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"domamarket/internal/platform/config"
	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/logger"
)

type fakeTag struct{ n int64 }

func (f fakeTag) String() string      { return "UPDATE" }
func (f fakeTag) RowsAffected() int64 { return f.n }

type fakeRow struct {
	v   any
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.v.(string)
	return nil
}

type fakeRows struct {
	vals []string
	i    int
	err  error
}

func (r *fakeRows) Next() bool { r.i++; return r.i <= len(r.vals) }
func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.vals[r.i-1]
	return nil
}
func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return []string{"key"} }

type fakeQ struct {
	tag  fakeTag
	err  error
	row  fakeRow
	rows *fakeRows
	ping error
}

func (f *fakeQ) Exec(context.Context, string, ...any) (CommandTag, error) { return f.tag, f.err }
func (f *fakeQ) Query(context.Context, string, ...any) (Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
func (f *fakeQ) QueryRow(context.Context, string, ...any) Row { return f.row }
func (f *fakeQ) Tx(ctx context.Context, fn func(RowQuerier) error) error {
	return fn(f)
}
func (f *fakeQ) Ping(context.Context) error { return f.ping }

func TestExecOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	if err := ExecOne(ctx, &fakeQ{tag: fakeTag{1}}, "UPDATE carts"); err != nil {
		t.Fatalf("one row: %v", err)
	}
	if err := ExecOne(ctx, &fakeQ{tag: fakeTag{0}}, "UPDATE carts"); !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("zero rows: %v", err)
	}
	boom := errors.New("boom")
	if err := ExecOne(ctx, &fakeQ{err: boom}, "UPDATE carts"); !errors.Is(err, boom) {
		t.Fatalf("exec err: %v", err)
	}
}

func TestScalarAndMany(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	v, err := Scalar[string](ctx, &fakeQ{row: fakeRow{v: "doma_cart"}}, "SELECT key")
	if err != nil || v != "doma_cart" {
		t.Fatalf("Scalar = %q %v", v, err)
	}
	if _, err := Scalar[string](ctx, &fakeQ{row: fakeRow{err: errors.New("no rows")}}, "SELECT key"); err == nil {
		t.Fatal("Scalar should surface scan error")
	}

	scan := func(r Row) (string, error) {
		var s string
		err := r.Scan(&s)
		return s, err
	}
	got, err := Many(ctx, &fakeQ{rows: &fakeRows{vals: []string{"a", "b"}}}, scan, "SELECT key")
	if err != nil || len(got) != 2 || got[1] != "b" {
		t.Fatalf("Many = %v %v", got, err)
	}
	if _, err := Many(ctx, &fakeQ{rows: &fakeRows{err: errors.New("iter")}}, scan, "SELECT key"); err == nil {
		t.Fatal("Many should surface rows.Err")
	}
}

func TestGuardAndClose(t *testing.T) {
	t.Parallel()
	var nilStore *Store
	if nilStore.Guard(context.Background()) == nil {
		t.Fatal("nil store guard should fail")
	}
	if nilStore.Close() != nil {
		t.Fatal("nil store close should be a no-op")
	}
	if err := (&Store{}).Guard(context.Background()); err != nil {
		t.Fatalf("no backends: %v", err)
	}
	s := &Store{PG: &fakeQ{ping: errors.New("down")}}
	if err := s.Guard(context.Background()); err == nil || err.Error() != "pg: down" {
		t.Fatalf("guard = %v", err)
	}
}

func TestOpen_Disabled(t *testing.T) {
	t.Parallel()
	s, err := Open(context.Background(), Config{}, WithLogger(*logger.Named("test")))
	if err != nil || s.PG != nil {
		t.Fatalf("Open disabled = %+v %v", s, err)
	}
}

func TestOpen_BadURL(t *testing.T) {
	t.Parallel()
	_, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true, URL: "://nope"}})
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFromConf(t *testing.T) {
	t.Setenv("DOMA_PG_DBURL", "postgres://u:p@h/db")
	t.Setenv("DOMA_PG_MAX_CONNS", "9")
	t.Setenv("DOMA_PG_LOG_SQL", "true")
	c := FromConf(config.New().Prefix("DOMA_"), "doma-api")
	if !c.PG.Enabled || c.PG.MaxConns != 9 || !c.PG.LogSQL || c.PG.SlowQueryMs != 200 || c.AppName != "doma-api" {
		t.Fatalf("FromConf = %+v", c)
	}
	if c.PG.PingTimeout != 3*time.Second {
		t.Fatalf("ping timeout = %v", c.PG.PingTimeout)
	}

	t.Setenv("DOMA_PG_DBURL", "")
	if FromConf(config.New().Prefix("DOMA_"), "x").PG.Enabled {
		t.Fatal("no URL means disabled")
	}
}
