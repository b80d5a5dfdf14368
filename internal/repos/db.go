package repos

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// OpenDB connects to the product database. driver is "postgres" (the hosted
// tables, read-only from here) or "sqlite" (local development and tests,
// created and seeded on open).
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "postgres":
		db, err := sqlx.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
		if err = db.Ping(); err != nil {
			return nil, err
		}
		return db, nil
	case "sqlite", "":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" a single database
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedDemoProducts(db); err != nil {
		return nil, err
	}
	return db, nil
}

// The three tables share a core column set but each kept a different
// subset of the legacy stock and sub-category aliases.
func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS animefigure(
  id TEXT PRIMARY KEY,
  slug TEXT,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT,
  sub_category TEXT,
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  image_url TEXT,
  images TEXT,
  brand TEXT,
  stock INTEGER DEFAULT 0,
  instock INTEGER,
  condition TEXT,
  copyright_sticker INTEGER,
  original_box INTEGER,
  dimensions TEXT,
  weight INTEGER,
  tags TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_animefigure_slug ON animefigure(slug);
CREATE INDEX IF NOT EXISTS idx_animefigure_category ON animefigure(category);

CREATE TABLE IF NOT EXISTS pokemon(
  id TEXT PRIMARY KEY,
  slug TEXT,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT,
  subcategory TEXT,
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  image_url TEXT,
  images TEXT,
  brand TEXT,
  stock INTEGER DEFAULT 0,
  in_stock INTEGER,
  is_in_stock INTEGER,
  condition TEXT,
  weight INTEGER,
  tags TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_pokemon_slug ON pokemon(slug);
CREATE INDEX IF NOT EXISTS idx_pokemon_category ON pokemon(category);

CREATE TABLE IF NOT EXISTS antique(
  id TEXT PRIMARY KEY,
  slug TEXT,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT,
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  image TEXT,
  image_url TEXT,
  images TEXT,
  stock INTEGER DEFAULT 0,
  available INTEGER,
  is_available INTEGER,
  condition TEXT,
  dimensions TEXT,
  weight INTEGER,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_antique_slug ON antique(slug);
CREATE INDEX IF NOT EXISTS idx_antique_category ON antique(category);
`
	_, err := db.Exec(schema)
	return err
}

// seedDemoProducts inserts a small demo catalog. Safe to run on every
// startup (idempotent).
func seedDemoProducts(db *sqlx.DB) error {
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM antique`); err != nil {
		return err
	}
	if n == 0 {
		log.Println("[seed] inserting demo antiques/figures/cards")
	}

	stmts := []string{
		`INSERT INTO animefigure(id,slug,name,description,category,price,image_url,images,brand,stock,instock,condition,copyright_sticker,original_box,dimensions,weight,tags,created_at)
		 VALUES
		  ('af-001','luffy-gear5','Monkey D. Luffy Gear 5','Large scale figure, displayed once.','popular',12800,'/static/img/demo/luffy.jpg','["/static/img/demo/luffy.jpg","/static/img/demo/luffy-back.jpg"]','Bandai',1,0,'Used',1,1,'{"height":32,"width":18,"depth":15,"unit":"cm"}',1200,'["one-piece","gear5"]','2025-03-10T09:00:00Z'),
		  ('af-002','rengoku-figure','Kyojuro Rengoku','Prize figure, sealed.','demon-slayer',4800,'/static/img/demo/rengoku.jpg',NULL,'SEGA',0,1,'New',1,1,'"{\"height\":20,\"width\":10,\"depth\":10,\"unit\":\"cm\"}"',450,NULL,'2025-04-02T09:00:00Z'),
		  ('af-003',NULL,'Unlisted Prototype','Display only.','one-piece',0,NULL,NULL,NULL,0,0,'Used',0,0,'not json',NULL,NULL,'2024-12-01T09:00:00Z')
		 ON CONFLICT(id) DO NOTHING`,
		`INSERT INTO pokemon(id,slug,name,description,category,subcategory,price,image_url,stock,in_stock,is_in_stock,condition,weight,created_at)
		 VALUES
		  ('pk-001','charizard-base-set','Charizard Base Set','Unlimited print, light play.','popular',NULL,85000,'/static/img/demo/charizard.jpg',1,0,0,'Used',5,'2025-05-01T09:00:00Z'),
		  ('pk-002','pikachu-promo','Pikachu Promo','Japanese promo card.',NULL,'promo',3500,'/static/img/demo/pikachu.jpg',0,0,1,'Mint',5,'2025-02-14T09:00:00Z'),
		  ('pk-003','mew-vintage','Mew Vintage','Sold out.','vintage',NULL,9000,NULL,0,0,0,'Used',5,'2024-11-20T09:00:00Z')
		 ON CONFLICT(id) DO NOTHING`,
		`INSERT INTO antique(id,slug,name,description,category,price,image,images,stock,available,is_available,condition,dimensions,weight,created_at)
		 VALUES
		  ('an-001','imari-plate','Imari Plate','Meiji period porcelain plate.','ceramics',45000,'/static/img/demo/imari.jpg','["/static/img/demo/imari.jpg"]',1,1,0,'Used','{"height":3,"width":24,"depth":24,"unit":"cm"}',800,'2025-01-20T09:00:00Z'),
		  ('an-002','tetsubin-kettle','Iron Tetsubin Kettle','Nanbu ironware.','tea_ceremony',28000,'/static/img/demo/tetsubin.jpg',NULL,0,0,1,'Used',NULL,2500,'2025-06-11T09:00:00Z'),
		  ('an-003','silk-kimono','Silk Kimono','Hand-dyed, early Showa.','kimono',36000,NULL,NULL,0,0,0,'Used',NULL,900,'2025-03-03T09:00:00Z')
		 ON CONFLICT(id) DO NOTHING`,
	}
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			return err
		}
	}
	return tx.Commit()
}
