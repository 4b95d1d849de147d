package store

const (
	createUser = `INSERT INTO users (id, username, email, name, password_hash, role, is_active, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
    RETURNING id, username, email, name, password_hash, role, is_active, last_login, created_at, updated_at;`

	findUserByIdentifier = `SELECT id, username, email, name, password_hash, role, is_active, last_login, created_at, updated_at
    FROM users
    WHERE LOWER(email) = $1 OR LOWER(username) = $1;`

	findUserByID = `SELECT id, username, email, name, password_hash, role, is_active, last_login, created_at, updated_at
    FROM users
    WHERE id = $1;`

	updateLastLogin = `UPDATE users
    SET last_login = $2, updated_at = $2
    WHERE id = $1;`

	listRooms = `SELECT slug, name, items, metadata, created_at, updated_at
		FROM rooms
		ORDER BY position;`

	getRoomBySlug = `SELECT slug, name, items, metadata, created_at, updated_at
		FROM rooms
		WHERE slug = $1;`

	upsertRoom = `INSERT INTO rooms (slug, name, items, metadata)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO UPDATE
		SET items = EXCLUDED.items, metadata = EXCLUDED.metadata, updated_at = NOW()
		RETURNING slug, name, items, metadata, created_at, updated_at;`

	insertRoom = `INSERT INTO rooms (slug, name, items, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING slug, name, items, metadata, created_at, updated_at;`

	renameRoom = `UPDATE rooms
		SET name = $2, updated_at = NOW()
		WHERE slug = $1
		RETURNING slug, name, items, metadata, created_at, updated_at;`

	deleteRoom = `DELETE FROM rooms
		WHERE slug = $1;`

	getTimeline = `SELECT phases
		FROM timeline
		WHERE id = $1;`

	upsertTimeline = `INSERT INTO timeline (id, phases)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET phases = EXCLUDED.phases, updated_at = NOW()
		RETURNING phases;`
)

// timelineRowID is the fixed primary key of the singleton timeline row.
// The timeline is project-scoped, so exactly one row ever exists.
const timelineRowID = "project"
