// Package postgres reads organization trees straight from an ANET
// PostgreSQL database.
//
// The ANET schema stores only parent links, so both the subtree and the
// root's ascendant chain are walked with recursive CTEs. Ascendant chains
// of descendants are derived from the parent links of the fetched rows.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
	"github.com/NCI-Agency/anet-orgchart/pkg/source"
)

const (
	connectTimeout = 5 * time.Second

	// maxWalk bounds both recursive walks so a cyclic parent chain in the
	// database cannot loop forever.
	maxWalk = 64
)

// ANET stores position roles and types as ordinals.
var (
	positionRoles = []org.Role{org.RoleMember, org.RoleDeputy, org.RoleLeader}
	positionTypes = []string{"ADVISOR", "PRINCIPAL", "SUPERUSER", "ADMINISTRATOR"}
)

const descendantsSQL = `
WITH RECURSIVE subtree(uuid, depth) AS (
	SELECT uuid, 0 FROM organizations WHERE uuid = $1
	UNION ALL
	SELECT o.uuid, s.depth + 1
	FROM organizations o
	JOIN subtree s ON o."parentOrgUuid" = s.uuid
	WHERE s.depth < $2
)
SELECT o.uuid,
       COALESCE(o."shortName", ''),
       COALESCE(o."longName", ''),
       COALESCE(o."identificationCode", ''),
       o."parentOrgUuid",
       COALESCE(o.app6context, ''),
       COALESCE(o."app6standardIdentity", ''),
       COALESCE(o."app6symbolSet", ''),
       s.depth
FROM subtree s
JOIN organizations o ON o.uuid = s.uuid
ORDER BY s.depth, o."shortName", o.uuid`

const ascendantsSQL = `
WITH RECURSIVE chain(uuid, parent, n) AS (
	SELECT uuid, "parentOrgUuid", 0 FROM organizations WHERE uuid = $1
	UNION ALL
	SELECT o.uuid, o."parentOrgUuid", c.n + 1
	FROM organizations o
	JOIN chain c ON o.uuid = c.parent
	WHERE c.n < $2
)
SELECT uuid FROM chain WHERE n > 0 ORDER BY n`

const positionsSQL = `
SELECT p."organizationUuid", p.uuid, COALESCE(p.name, ''), p.type, p.role,
       pe.uuid, pe.name, pe.rank, pe."avatarUuid"
FROM positions p
LEFT JOIN people pe ON pe.uuid = p."currentPersonUuid"
WHERE p."organizationUuid" = ANY($1)
ORDER BY p."organizationUuid", p.name, p.uuid`

// Store is a [source.Source] backed by an ANET database.
type Store struct {
	pool *pgxpool.Pool
}

// Open creates a connection pool for dsn and pings the server.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "parse postgres dsn")
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to postgres")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping postgres")
	}
	return &Store{pool: pool}, nil
}

// NewStore wraps an existing pool.
func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

func (s *Store) Name() string {
	cfg := s.pool.Config().ConnConfig
	return "postgres:" + cfg.Host + "/" + cfg.Database
}

// Fetch loads the subtree rooted at orgUUID with every position and its
// current holder.
func (s *Store) Fetch(ctx context.Context, orgUUID string) (*org.Tree, error) {
	if err := source.ValidateOrgUUID(orgUUID); err != nil {
		return nil, err
	}

	orgs, err := s.subtree(ctx, orgUUID)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, errors.New(errors.ErrCodeOrgNotFound, "organization %s not found", orgUUID)
	}
	if err := s.attachPositions(ctx, orgs); err != nil {
		return nil, err
	}

	rootChain, err := s.ascendants(ctx, orgUUID)
	if err != nil {
		return nil, err
	}

	tree := &org.Tree{Root: orgs[0], Descendants: orgs[1:]}
	tree.Root.AscendantOrgs = rootChain
	idx := tree.Index()
	for i := range tree.Descendants {
		d := &tree.Descendants[i]
		d.AscendantOrgs = append(idx.Ascendants(d.UUID), rootChain...)
	}
	return tree, nil
}

// Close releases the pool.
func (s *Store) Close() { s.pool.Close() }

// subtree returns the root first, then descendants by depth and name.
func (s *Store) subtree(ctx context.Context, orgUUID string) ([]org.Organization, error) {
	rows, err := s.pool.Query(ctx, descendantsSQL, orgUUID, maxWalk)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query subtree of %s", orgUUID)
	}
	defer rows.Close()

	var orgs []org.Organization
	for rows.Next() {
		var (
			o      org.Organization
			parent *string
			depth  int
		)
		if err := rows.Scan(&o.UUID, &o.ShortName, &o.LongName, &o.IdentificationCode, &parent,
			&o.Context, &o.StandardIdentity, &o.SymbolSet, &depth); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "scan organization")
		}
		// the root's parent lies outside the tree
		if parent != nil && depth > 0 {
			o.ParentOrg = &org.Ref{UUID: *parent}
		}
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read subtree of %s", orgUUID)
	}
	return orgs, nil
}

func (s *Store) ascendants(ctx context.Context, orgUUID string) ([]org.Ref, error) {
	rows, err := s.pool.Query(ctx, ascendantsSQL, orgUUID, maxWalk)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query ascendants of %s", orgUUID)
	}
	refs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (org.Ref, error) {
		var r org.Ref
		err := row.Scan(&r.UUID)
		return r, err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read ascendants of %s", orgUUID)
	}
	return refs, nil
}

func (s *Store) attachPositions(ctx context.Context, orgs []org.Organization) error {
	byUUID := make(map[string]*org.Organization, len(orgs))
	ids := make([]string, len(orgs))
	for i := range orgs {
		ids[i] = orgs[i].UUID
		byUUID[orgs[i].UUID] = &orgs[i]
	}

	rows, err := s.pool.Query(ctx, positionsSQL, ids)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "query positions")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orgUUID          string
			p                org.Position
			typ, role        *int
			personUUID, name *string
			rank, avatarUUID *string
		)
		if err := rows.Scan(&orgUUID, &p.UUID, &p.Name, &typ, &role,
			&personUUID, &name, &rank, &avatarUUID); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "scan position")
		}
		p.Type = ordinal(positionTypes, typ)
		p.Role = ordinal(positionRoles, role)
		if personUUID != nil {
			p.Person = &org.Person{
				UUID:       *personUUID,
				Name:       deref(name),
				Rank:       deref(rank),
				AvatarUUID: deref(avatarUUID),
			}
		}
		if o := byUUID[orgUUID]; o != nil {
			o.Positions = append(o.Positions, p)
		}
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "read positions")
	}
	return nil
}

func ordinal[T any](values []T, n *int) T {
	var zero T
	if n == nil || *n < 0 || *n >= len(values) {
		return zero
	}
	return values[*n]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ source.Source = (*Store)(nil)
