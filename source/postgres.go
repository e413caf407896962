package source

import (
	"context"
	"errors"
	"time"

	zerologadapter "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"mit.edu/dsg/qep/common"
	log "mit.edu/dsg/qep/logging"
)

const explainPrefix = "EXPLAIN (FORMAT JSON) "

// Postgres asks a PostgreSQL server for query plans. It holds one connection
// pool for the lifetime of the process; Close releases it.
type Postgres struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPostgres connects to the database at connString and verifies the
// connection with a ping.
func NewPostgres(ctx context.Context, connString string, explainTimeout time.Duration) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, common.WrapError(common.PlanSourceError, common.StagePlanSource, err, "invalid connection string")
	}
	configurePGXLogger(poolConfig.ConnConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, common.WrapError(common.PlanSourceError, common.StagePlanSource, err, "cannot create connection pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, common.WrapError(common.PlanSourceError, common.StagePlanSource, err, "cannot reach database")
	}

	log.Info().
		Str("host", poolConfig.ConnConfig.Host).
		Str("database", poolConfig.ConnConfig.Database).
		Msg("connected to plan source")
	return &Postgres{pool: pool, timeout: explainTimeout}, nil
}

// configurePGXLogger routes pgx's query log into zerolog. Info events are
// demoted to debug since every explain would otherwise be logged.
func configurePGXLogger(connConfig *pgx.ConnConfig) {
	l := zerologadapter.NewLogger(log.Logger)
	connConfig.Tracer = &tracelog.TraceLog{
		Logger: tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
			if level == tracelog.LogLevelInfo {
				level = tracelog.LogLevelDebug
			}
			l.Log(ctx, level, msg, data)
		}),
		LogLevel: tracelog.LogLevelInfo,
	}
}

// Explain runs EXPLAIN (FORMAT JSON) for query inside a read-only transaction
// that is always rolled back, so the statement is planned but never executed.
func (p *Postgres) Explain(ctx context.Context, query string) ([]byte, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, common.WrapError(common.PlanSourceError, common.StagePlanSource, err, "cannot start transaction")
	}
	defer func() {
		if err := tx.Rollback(context.Background()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to roll back explain transaction")
		}
	}()

	var doc []byte
	if err := tx.QueryRow(ctx, explainPrefix+q).Scan(&doc); err != nil {
		return nil, explainError(err)
	}
	return doc, nil
}

// explainError separates statements the server rejected from failures to talk
// to the server at all.
func explainError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return common.WrapError(common.InvalidQueryError, common.StagePlanSource, err, "query rejected by the planner")
	}
	return common.WrapError(common.PlanSourceError, common.StagePlanSource, err, "explain failed")
}

func (p *Postgres) Close() {
	p.pool.Close()
}
