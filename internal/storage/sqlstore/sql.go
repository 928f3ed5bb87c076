package sqlstore

// Schema per dialect. Statements run one at a time so the DSN does not need
// multiStatements.
var schema = map[string][]string{
	DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS restaurants (
  id           BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
  name         VARCHAR(255) NOT NULL,
  city         VARCHAR(255) NOT NULL DEFAULT '',
  cuisine_hint VARCHAR(255) NOT NULL DEFAULT '',
  created_at   DATETIME(6)  NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS menu_items (
  id            BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
  restaurant_id BIGINT       NOT NULL,
  name          VARCHAR(255) NOT NULL,
  description   TEXT         NOT NULL,
  price_cents   BIGINT       NOT NULL,
  currency      CHAR(3)      NOT NULL DEFAULT 'USD',
  is_signature  BOOLEAN      NOT NULL DEFAULT FALSE,
  region_tags   TEXT         NOT NULL,
  flavor_tags   TEXT         NOT NULL,
  created_at    DATETIME(6)  NOT NULL,
  KEY idx_menu_items_restaurant (restaurant_id),
  CONSTRAINT fk_menu_items_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants (id),
  CONSTRAINT chk_menu_items_price CHECK (price_cents >= 0)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	},
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS restaurants (
  id           BIGSERIAL    PRIMARY KEY,
  name         TEXT         NOT NULL,
  city         TEXT         NOT NULL DEFAULT '',
  cuisine_hint TEXT         NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ  NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
  id            BIGSERIAL   PRIMARY KEY,
  restaurant_id BIGINT      NOT NULL REFERENCES restaurants (id),
  name          TEXT        NOT NULL,
  description   TEXT        NOT NULL DEFAULT '',
  price_cents   BIGINT      NOT NULL CHECK (price_cents >= 0),
  currency      CHAR(3)     NOT NULL DEFAULT 'USD',
  is_signature  BOOLEAN     NOT NULL DEFAULT FALSE,
  region_tags   TEXT        NOT NULL DEFAULT '[]',
  flavor_tags   TEXT        NOT NULL DEFAULT '[]',
  created_at    TIMESTAMPTZ NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant ON menu_items (restaurant_id)`,
	},
}

// Queries are written with '?' placeholders and rebound per dialect.

const insertRestaurantSQL = `
INSERT INTO restaurants (name, city, cuisine_hint, created_at)
VALUES (?, ?, ?, ?)`

const insertItemSQL = `
INSERT INTO menu_items
  (restaurant_id, name, description, price_cents, currency, is_signature, region_tags, flavor_tags, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)`

const restaurantExistsSQL = `SELECT 1 FROM restaurants WHERE id = ?`

const getRestaurantSQL = `
SELECT id, name, city, cuisine_hint, created_at
FROM restaurants
WHERE id = ?`

const listRestaurantsSQL = `
SELECT id, name, city, cuisine_hint, created_at
FROM restaurants
ORDER BY id`

// Final ordering is applied in Go; collations differ between engines.
const listItemsSQL = `
SELECT id, restaurant_id, name, description, price_cents, currency, is_signature, region_tags, flavor_tags, created_at
FROM menu_items
ORDER BY id`

const deleteItemsSQL = `DELETE FROM menu_items`

const deleteRestaurantsSQL = `DELETE FROM restaurants`
