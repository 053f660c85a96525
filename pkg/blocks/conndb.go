package blocks

import (
	"sort"

	"github.com/matzehuels/blocksnap/pkg/geom"
)

// ConnectionDB indexes the connections of one type by position so that the
// nearest compatible connection can be found without scanning the whole
// workspace. Entries are kept sorted by y, then x; a search only visits the
// slice of entries whose y lies within the search radius.
type ConnectionDB struct {
	checker Checker
	conns   []*Connection
}

// NewConnectionDB returns an empty index using checker for compatibility.
func NewConnectionDB(checker Checker) *ConnectionDB {
	if checker == nil {
		checker = DefaultChecker{}
	}
	return &ConnectionDB{checker: checker}
}

// Len returns the number of indexed connections.
func (db *ConnectionDB) Len() int { return len(db.conns) }

// Connections returns the indexed connections in index order.
func (db *ConnectionDB) Connections() []*Connection {
	out := make([]*Connection, len(db.conns))
	copy(out, db.conns)
	return out
}

// Add indexes c. Adding a connection twice is a no-op.
func (db *ConnectionDB) Add(c *Connection) {
	if c.tracked {
		return
	}
	i := db.indexFor(c.pos)
	db.conns = append(db.conns, nil)
	copy(db.conns[i+1:], db.conns[i:])
	db.conns[i] = c
	c.tracked = true
	c.db = db
}

// Remove drops c from the index. Removing an untracked connection is a
// no-op.
func (db *ConnectionDB) Remove(c *Connection) {
	if !c.tracked || c.db != db {
		return
	}
	i := db.find(c)
	if i < 0 {
		return
	}
	db.conns = append(db.conns[:i], db.conns[i+1:]...)
	c.tracked = false
	c.db = nil
}

// SearchForClosest returns the nearest connection that conn, displaced by
// dxy, may connect to, together with its distance. Only candidates within
// maxRadius are considered; the first hit may lie exactly on the radius,
// every later hit must be strictly closer. If nothing is found it returns
// nil and maxRadius.
func (db *ConnectionDB) SearchForClosest(conn *Connection, maxRadius float64, dxy geom.Point) (*Connection, float64) {
	if len(db.conns) == 0 {
		return nil, maxRadius
	}
	base := conn.pos.Add(dxy)
	var best *Connection
	bestRadius := maxRadius
	consider := func(cand *Connection) {
		d := base.Distance(cand.pos)
		if d > bestRadius || (best != nil && d == bestRadius) {
			return
		}
		if !db.checker.CanConnect(conn, cand, true) {
			return
		}
		best, bestRadius = cand, d
	}

	start := sort.Search(len(db.conns), func(i int) bool { return db.conns[i].pos.Y >= base.Y })
	for i := start - 1; i >= 0 && base.Y-db.conns[i].pos.Y <= maxRadius; i-- {
		consider(db.conns[i])
	}
	for i := start; i < len(db.conns) && db.conns[i].pos.Y-base.Y <= maxRadius; i++ {
		consider(db.conns[i])
	}
	return best, bestRadius
}

// indexFor returns the insertion index for position p, after any entries
// at the same position.
func (db *ConnectionDB) indexFor(p geom.Point) int {
	return sort.Search(len(db.conns), func(i int) bool {
		q := db.conns[i].pos
		return q.Y > p.Y || (q.Y == p.Y && q.X > p.X)
	})
}

func (db *ConnectionDB) find(c *Connection) int {
	lo := sort.Search(len(db.conns), func(i int) bool { return db.conns[i].pos.Y >= c.pos.Y })
	for i := lo; i < len(db.conns) && db.conns[i].pos.Y == c.pos.Y; i++ {
		if db.conns[i] == c {
			return i
		}
	}
	// Fall back to a scan in case the position changed while tracked.
	for i, other := range db.conns {
		if other == c {
			return i
		}
	}
	return -1
}
