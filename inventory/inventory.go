// Package inventory records the libraries, drives and cartridges that have
// been handed to the VTL engine. It is the authority on name and label
// uniqueness.
package inventory

import (
	"database/sql"
	"net/http"

	"github.com/ansel1/merry"
	"github.com/golang/glog"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/net/context"

	"github.com/allfs/quadstorvtl/catalog"
	"github.com/allfs/quadstorvtl/util/proc"
)

var (
	ErrExists   = merry.New("already exists").WithHTTPCode(http.StatusConflict)
	ErrNotFound = merry.New("not found").WithHTTPCode(http.StatusNotFound)
)

const schema = `
CREATE TABLE IF NOT EXISTS library (
	name    TEXT PRIMARY KEY,
	type    INTEGER NOT NULL,
	slots   INTEGER NOT NULL,
	created DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS drive (
	name    TEXT NOT NULL,
	library TEXT NOT NULL DEFAULT '',
	type    INTEGER NOT NULL,
	UNIQUE (library, name)
);

CREATE TABLE IF NOT EXISTS cartridge (
	label   TEXT PRIMARY KEY,
	library TEXT NOT NULL,
	media   INTEGER NOT NULL,
	worm    INTEGER NOT NULL DEFAULT 0,
	status  TEXT NOT NULL DEFAULT 'scratch'
);
`

type Drive struct {
	Name string            `json:"name"`
	Type catalog.DriveCode `json:"type"`

	// Library is empty for a standalone drive.
	Library string `json:"library,omitempty"`
}

type Library struct {
	Name   string              `json:"name"`
	Type   catalog.LibraryCode `json:"type"`
	Slots  int                 `json:"slots"`
	Drives []*Drive            `json:"drives"`
}

// DriveTypes returns the distinct drive types of the library.
func (lib *Library) DriveTypes() []catalog.DriveCode {
	var out []catalog.DriveCode
	seen := make(map[catalog.DriveCode]bool)
	for _, drv := range lib.Drives {
		if !seen[drv.Type] {
			seen[drv.Type] = true
			out = append(out, drv.Type)
		}
	}

	return out
}

type Cartridge struct {
	Label   string            `json:"label"`
	Library string            `json:"library"`
	Media   catalog.MediaCode `json:"media"`
	WORM    bool              `json:"worm"`
	Status  string            `json:"status"`
}

type Inventory struct {
	*proc.Proc

	db *sql.DB
}

func New(dbname string) (*Inventory, error) {
	// open inventory database
	handle, err := sql.Open("sqlite3", dbname)
	if err != nil {
		return nil, err
	}

	if _, err := handle.Exec(schema); err != nil {
		handle.Close()
		return nil, merry.Prependf(err, "create inventory schema in %s", dbname)
	}

	inv := &Inventory{db: handle}

	inv.Proc = proc.Create(inv)

	return inv, nil
}

func (inv *Inventory) ProcessName() string {
	return "inventory"
}

func (inv *Inventory) Handle(ctx context.Context, req proc.HandleFn) error {
	return req(ctx)
}

func isConstraint(err error) bool {
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}

	return false
}

// rollback aborts tx and returns err.
func rollback(tx *sql.Tx, err error) error {
	if rerr := tx.Rollback(); rerr != nil {
		glog.Errorf("inventory: rollback: %v", rerr)
	}

	return err
}

// AddLibrary records lib and its drives. A library of the same name yields
// ErrExists.
func (inv *Inventory) AddLibrary(ctx context.Context, lib *Library) error {
	req := func(ctx context.Context) error {
		tx, err := inv.db.Begin()
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO library (name, type, slots)
			VALUES (?, ?, ?)`,
			lib.Name, int(lib.Type), lib.Slots,
		)

		if err != nil {
			if isConstraint(err) {
				err = merry.WithUserMessagef(ErrExists, "VTL %s already exists", lib.Name)
			}

			return rollback(tx, err)
		}

		for _, drv := range lib.Drives {
			_, err = tx.Exec(`
				INSERT INTO drive (name, library, type)
				VALUES (?, ?, ?)`,
				drv.Name, lib.Name, int(drv.Type),
			)

			if err != nil {
				if isConstraint(err) {
					err = merry.WithUserMessagef(ErrExists, "VDrive %s already exists in %s", drv.Name, lib.Name)
				}

				return rollback(tx, err)
			}
		}

		return tx.Commit()
	}

	return inv.Wait(ctx, req)
}

// AddDrive records a standalone drive. A standalone drive of the same name
// yields ErrExists.
func (inv *Inventory) AddDrive(ctx context.Context, drv *Drive) error {
	req := func(ctx context.Context) error {
		_, err := inv.db.Exec(`
			INSERT INTO drive (name, library, type)
			VALUES (?, '', ?)`,
			drv.Name, int(drv.Type),
		)

		if isConstraint(err) {
			return merry.WithUserMessagef(ErrExists, "VDrive %s already exists", drv.Name)
		}

		return err
	}

	return inv.Wait(ctx, req)
}

// Drives returns the drives of library, or the standalone drives when
// library is empty.
func (inv *Inventory) Drives(ctx context.Context, library string) ([]*Drive, error) {
	var drvs []*Drive

	req := func(ctx context.Context) error {
		var err error
		drvs, err = inv.drives(library)
		return err
	}

	if err := inv.Wait(ctx, req); err != nil {
		return nil, err
	}

	return drvs, nil
}

func (inv *Inventory) drives(library string) ([]*Drive, error) {
	rows, err := inv.db.Query(`
		SELECT name, type
		FROM drive
		WHERE library = ?
		ORDER BY rowid`,
		library,
	)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drvs []*Drive
	for rows.Next() {
		drv := &Drive{Library: library}

		var t int
		if err := rows.Scan(&drv.Name, &t); err != nil {
			return nil, err
		}

		drv.Type = catalog.DriveCode(t)
		drvs = append(drvs, drv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return drvs, nil
}

// Library returns the library called name with its drives.
func (inv *Inventory) Library(ctx context.Context, name string) (*Library, error) {
	var lib *Library

	req := func(ctx context.Context) error {
		row := inv.db.QueryRow(`SELECT type, slots FROM library WHERE name = ?`, name)

		var t, slots int
		if err := row.Scan(&t, &slots); err != nil {
			if err == sql.ErrNoRows {
				return merry.WithUserMessagef(ErrNotFound, "VTL %s does not exist", name)
			}

			return err
		}

		drvs, err := inv.drives(name)
		if err != nil {
			return err
		}

		lib = &Library{
			Name:   name,
			Type:   catalog.LibraryCode(t),
			Slots:  slots,
			Drives: drvs,
		}

		return nil
	}

	if err := inv.Wait(ctx, req); err != nil {
		return nil, err
	}

	return lib, nil
}

// Libraries returns every library, oldest first.
func (inv *Inventory) Libraries(ctx context.Context) ([]*Library, error) {
	var libs []*Library

	req := func(ctx context.Context) error {
		rows, err := inv.db.Query(`SELECT name, type, slots FROM library ORDER BY rowid`)
		if err != nil {
			return err
		}

		for rows.Next() {
			lib := new(Library)

			var t int
			if err := rows.Scan(&lib.Name, &t, &lib.Slots); err != nil {
				rows.Close()
				return err
			}

			lib.Type = catalog.LibraryCode(t)
			libs = append(libs, lib)
		}

		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		for _, lib := range libs {
			if lib.Drives, err = inv.drives(lib.Name); err != nil {
				return err
			}
		}

		return nil
	}

	if err := inv.Wait(ctx, req); err != nil {
		return nil, err
	}

	return libs, nil
}

// AddCartridges records a batch of cartridges. Labels are unique across the
// inventory; the first duplicate aborts the whole batch with ErrExists.
func (inv *Inventory) AddCartridges(ctx context.Context, carts []*Cartridge) error {
	req := func(ctx context.Context) error {
		tx, err := inv.db.Begin()
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO cartridge (label, library, media, worm)
			VALUES (?, ?, ?, ?)`,
		)

		if err != nil {
			return rollback(tx, err)
		}
		defer stmt.Close()

		for _, cart := range carts {
			_, err := stmt.Exec(cart.Label, cart.Library, int(cart.Media), cart.WORM)
			if err != nil {
				if isConstraint(err) {
					err = merry.WithUserMessagef(ErrExists, "VCartridge with label %s already exists", cart.Label).
						WithValue("label", cart.Label)
				}

				return rollback(tx, err)
			}
		}

		return tx.Commit()
	}

	return inv.Wait(ctx, req)
}

// Cartridges returns the cartridges of library in label order.
func (inv *Inventory) Cartridges(ctx context.Context, library string) ([]*Cartridge, error) {
	var carts []*Cartridge

	req := func(ctx context.Context) error {
		rows, err := inv.db.Query(`
			SELECT label, media, worm, status
			FROM cartridge
			WHERE library = ?
			ORDER BY label`,
			library,
		)

		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			cart := &Cartridge{Library: library}

			var media int
			if err := rows.Scan(&cart.Label, &media, &cart.WORM, &cart.Status); err != nil {
				return err
			}

			cart.Media = catalog.MediaCode(media)
			carts = append(carts, cart)
		}

		return rows.Err()
	}

	if err := inv.Wait(ctx, req); err != nil {
		return nil, err
	}

	return carts, nil
}

// RemoveLibrary forgets the library called name with its drives and
// cartridges.
func (inv *Inventory) RemoveLibrary(ctx context.Context, name string) error {
	req := func(ctx context.Context) error {
		tx, err := inv.db.Begin()
		if err != nil {
			return err
		}

		res, err := tx.Exec(`DELETE FROM library WHERE name = ?`, name)
		if err != nil {
			return rollback(tx, err)
		}

		if n, _ := res.RowsAffected(); n == 0 {
			return rollback(tx, merry.WithUserMessagef(ErrNotFound, "VTL %s does not exist", name))
		}

		for _, stmt := range []string{
			`DELETE FROM drive WHERE library = ?`,
			`DELETE FROM cartridge WHERE library = ?`,
		} {
			if _, err := tx.Exec(stmt, name); err != nil {
				return rollback(tx, err)
			}
		}

		return tx.Commit()
	}

	return inv.Wait(ctx, req)
}

// RemoveDrive forgets the standalone drive called name.
func (inv *Inventory) RemoveDrive(ctx context.Context, name string) error {
	req := func(ctx context.Context) error {
		res, err := inv.db.Exec(`DELETE FROM drive WHERE library = '' AND name = ?`, name)
		if err != nil {
			return err
		}

		if n, _ := res.RowsAffected(); n == 0 {
			return merry.WithUserMessagef(ErrNotFound, "VDrive %s does not exist", name)
		}

		return nil
	}

	return inv.Wait(ctx, req)
}

// RemoveCartridges forgets the cartridges with the given labels.
func (inv *Inventory) RemoveCartridges(ctx context.Context, labels []string) error {
	req := func(ctx context.Context) error {
		tx, err := inv.db.Begin()
		if err != nil {
			return err
		}

		for _, label := range labels {
			if _, err := tx.Exec(`DELETE FROM cartridge WHERE label = ?`, label); err != nil {
				return rollback(tx, err)
			}
		}

		return tx.Commit()
	}

	return inv.Wait(ctx, req)
}

func (inv *Inventory) Close(ctx context.Context) error {
	req := func(ctx context.Context) error {
		return inv.db.Close()
	}

	err := inv.Wait(ctx, req)
	inv.Stop()

	return err
}
