package redis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/dishcovery/internal/db"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/filter"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/predicate"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

// --- json.go tests ---

func TestJSONSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.SET", "k1", "$", `{"id":"42"}`)).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.JSONSet(context.Background(), "k1", "$", []byte(`{"id":"42"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJSONGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.GET", "missing", "$")).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c)
	_, err := s.JSONGet(context.Background(), "missing", "$")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("error = %v, want ErrKeyNotFound", err)
	}
}

func TestJSONGet_WrapsStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.GET", "k1", "$")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.JSONGet(context.Background(), "k1", "$")
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %T", err)
	}
}

// --- index.go tests ---

func TestCreateIndex_BuildsSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	def := db.NewIndex("restaurants:idx").
		OnJSON().
		Prefix("dishcovery:restaurants:").
		Text("$.cuisines", "cuisines").
		Numeric("$.price_range", "price_range").
		MustBuild()

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			joined := strings.Join(cmd, " ")
			return cmd[0] == "FT.CREATE" &&
				strings.Contains(joined, "ON JSON") &&
				strings.Contains(joined, "PREFIX 1 dishcovery:restaurants:") &&
				strings.Contains(joined, "$.cuisines AS cuisines TEXT") &&
				strings.Contains(joined, "$.price_range AS price_range NUMERIC")
		})).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.CreateIndex(context.Background(), def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.CREATE" })).
		Return(mock.Result(mock.RedisError("Index already exists")))

	def := db.NewIndex("restaurants:idx").Text("$.name", "name").MustBuild()
	s := NewStoreForTest(c)
	if err := s.CreateIndex(context.Background(), def); !errors.Is(err, db.ErrIndexExists) {
		t.Fatalf("error = %v, want ErrIndexExists", err)
	}
}

func TestIndexExists_UnknownIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "restaurants:idx")).
		Return(mock.Result(mock.RedisError("Unknown index name")))

	s := NewStoreForTest(c)
	ok, err := s.IndexExists(context.Background(), "restaurants:idx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected index to be absent")
	}
}

// --- search.go tests ---

func mustPredicate(t *testing.T, tags []string, spec filter.Spec, opts ...predicate.Option) predicate.Predicate {
	t.Helper()
	p, err := predicate.Build(tags, spec, opts...)
	if err != nil {
		t.Fatalf("predicate.Build: %v", err)
	}
	return p
}

func TestSearchPredicate_ParsesEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" && cmd[1] == "restaurants:idx"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(2),
			mock.RedisString("dishcovery:restaurants:u1"),
			mock.RedisArray(mock.RedisString("$"), mock.RedisString(`{"id":"1"}`)),
			mock.RedisString("dishcovery:restaurants:u2"),
			mock.RedisArray(mock.RedisString("$"), mock.RedisString(`{"id":"2"}`)),
		)))

	s := NewStoreForTest(c)
	res, err := s.SearchPredicate(context.Background(), &db.PredicateQuery{
		IndexName:    "restaurants:idx",
		Predicate:    mustPredicate(t, []string{"italian"}, filter.Spec{}),
		Offset:       0,
		Limit:        10,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 || len(res.Entries) != 2 {
		t.Fatalf("total = %d, entries = %d", res.Total, len(res.Entries))
	}
	if res.Entries[0].Fields["$"] != `{"id":"1"}` {
		t.Errorf("entry fields = %v", res.Entries[0].Fields)
	}
}

func TestSearchPredicate_EmptyResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.SEARCH" })).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c)
	res, err := s.SearchPredicate(context.Background(), &db.PredicateQuery{
		IndexName: "restaurants:idx",
		Predicate: mustPredicate(t, []string{"martian"}, filter.Spec{}),
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 || len(res.Entries) != 0 {
		t.Errorf("total = %d, entries = %d, want empty", res.Total, len(res.Entries))
	}
}

func TestCountPredicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			joined := strings.Join(cmd, " ")
			return cmd[0] == "FT.SEARCH" && strings.Contains(joined, "LIMIT 0 0")
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(17))))

	s := NewStoreForTest(c)
	n, err := s.CountPredicate(context.Background(), "restaurants:idx",
		mustPredicate(t, []string{"thai"}, filter.Spec{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 17 {
		t.Errorf("count = %d, want 17", n)
	}
}

// --- BuildQuery tests ---

func TestBuildQuery_TagOnly(t *testing.T) {
	p := mustPredicate(t, []string{"italian"}, filter.Spec{})
	got := BuildQuery(p)
	want := "@cuisines:(w'*italian*')"
	if got != want {
		t.Errorf("BuildQuery = %q, want %q", got, want)
	}
}

func TestBuildQuery_NameFanOut(t *testing.T) {
	p := mustPredicate(t, []string{"pizza"}, filter.Spec{}, predicate.MatchNames())
	got := BuildQuery(p)
	want := "(@cuisines:(w'*pizza*') | @name:(w'*pizza*'))"
	if got != want {
		t.Errorf("BuildQuery = %q, want %q", got, want)
	}
}

func TestBuildQuery_FiltersAndTags(t *testing.T) {
	spec, err := filter.Parse("1,3", "4.0")
	if err != nil {
		t.Fatalf("filter.Parse: %v", err)
	}
	p := mustPredicate(t, []string{"indian"}, spec)
	got := BuildQuery(p)
	want := "@price_range:[1 3] @rating:[4 +inf] @cuisines:(w'*indian*')"
	if got != want {
		t.Errorf("BuildQuery = %q, want %q", got, want)
	}
}

func TestBuildQuery_MultiWordTerm(t *testing.T) {
	p := mustPredicate(t, []string{"north indian"}, filter.Spec{})
	got := BuildQuery(p)
	want := "@cuisines:(w'*north*' w'*indian*')"
	if got != want {
		t.Errorf("BuildQuery = %q, want %q", got, want)
	}
}

func TestBuildQuery_MultiWordNameFanOut(t *testing.T) {
	p := mustPredicate(t, []string{"south indian"}, filter.Spec{}, predicate.MatchNames())
	got := BuildQuery(p)
	want := "(@cuisines:(w'*south*' w'*indian*') | @name:(w'*south*' w'*indian*'))"
	if got != want {
		t.Errorf("BuildQuery = %q, want %q", got, want)
	}
}

func TestBuildQuery_SanitizesTerms(t *testing.T) {
	p := mustPredicate(t, []string{"piz*za'"}, filter.Spec{})
	got := BuildQuery(p)
	if strings.Contains(got, "*za") || strings.Contains(got, "'*pizza'*'") {
		t.Errorf("BuildQuery = %q, syntax characters leaked", got)
	}
	if !strings.Contains(got, "pizza") {
		t.Errorf("BuildQuery = %q, want sanitized term pizza", got)
	}
}

func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
