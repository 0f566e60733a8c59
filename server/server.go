// Package server hands validated submissions to the VTL engine. It records
// them in the inventory, which enforces name and label uniqueness, and spools
// them for the engine to pick up.
package server

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ansel1/merry"
	"github.com/golang/glog"
	"golang.org/x/net/context"

	"github.com/allfs/quadstorvtl/catalog"
	"github.com/allfs/quadstorvtl/config"
	"github.com/allfs/quadstorvtl/form"
	"github.com/allfs/quadstorvtl/inventory"
	"github.com/allfs/quadstorvtl/spool"
	"github.com/allfs/quadstorvtl/vtlconf"
)

type Server struct {
	cfg *config.Config

	spool *spool.Spool
	inv   *inventory.Inventory

	stats *Stats
}

// VTLSubmission is the spooled form of a new library.
type VTLSubmission struct {
	Conf     *vtlconf.Conf `json:"conf"`
	Document string        `json:"document"`
}

// CartridgeBatch is the spooled form of a batch of cartridges.
type CartridgeBatch struct {
	Library string            `json:"library"`
	Media   catalog.MediaCode `json:"media"`
	WORM    bool              `json:"worm"`
	Labels  []string          `json:"labels"`
	Seq     uint64            `json:"seq,omitempty"`
}

func initSpool(cfg *config.Config) (*spool.Spool, error) {
	if cfg.Spool.Path == "" {
		cfg.Spool.Path = "./spool.db"
	}

	return spool.Open(cfg.Spool.Path)
}

func initInventory(cfg *config.Config) (*inventory.Inventory, error) {
	if cfg.Inventory.Path == "" {
		cfg.Inventory.Path = "./inventory.db"
	}

	return inventory.New(cfg.Inventory.Path)
}

func New(cfg *config.Config) (*Server, error) {
	srv := &Server{
		cfg:   cfg,
		stats: new(Stats),
	}

	var err error

	srv.spool, err = initSpool(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize spool: %s", err)
	}

	srv.inv, err = initInventory(cfg)
	if err != nil {
		srv.spool.Close(context.Background())
		return nil, fmt.Errorf("failed to initialize inventory: %s", err)
	}

	glog.Infof("init: spool %s, inventory %s", cfg.Spool.Path, cfg.Inventory.Path)

	return srv, nil
}

func (srv *Server) Config() *config.Config {
	return srv.cfg
}

// MaxDrives is the drive budget of a library.
func (srv *Server) MaxDrives() int {
	if n := srv.cfg.Limits.MaxDrives; n > 0 {
		return n
	}

	return catalog.MaxDrives
}

// MaxCartridges is the largest cartridge batch accepted.
func (srv *Server) MaxCartridges() int {
	if n := srv.cfg.Limits.MaxCartridges; n > 0 {
		return n
	}

	return form.MaxCartridges
}

// Reject counts a submission of kind turned away before reaching the server.
func (srv *Server) Reject(kind string) {
	srv.stats.Rejected(kind)
}

func (srv *Server) done(kind string, err error) {
	if err != nil {
		srv.stats.Rejected(kind)
		return
	}

	srv.stats.Accepted(kind)
}

// undoTimeout bounds the removal of inventory rows whose spool write failed.
const undoTimeout = 10 * time.Second

// undo runs fn on a context of its own: the request context that failed the
// spool write may already be cancelled, and the rows must go regardless.
func undo(op, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), undoTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		glog.Errorf("%s: %s: undo inventory: %v", op, name, err)
	}
}

// AddVTL records conf and spools its document.
func (srv *Server) AddVTL(ctx context.Context, conf *vtlconf.Conf) (rec *spool.Record, err error) {
	defer func() { srv.done(spool.KindVTL, err) }()

	if len(conf.Drives) > srv.MaxDrives() {
		return nil, form.Invalid(form.ErrOutOfRange, "ndrives",
			"Number of VDrives greater than maximum VDrives per VTL",
		)
	}

	lib := &inventory.Library{
		Name:  conf.Name,
		Type:  conf.Library,
		Slots: conf.Slots,
	}

	for _, drv := range conf.Drives {
		lib.Drives = append(lib.Drives, &inventory.Drive{Name: drv.Name, Type: drv.Type})
	}

	var doc bytes.Buffer
	if err := conf.Encode(&doc); err != nil {
		return nil, err
	}

	// the engine only sees the document
	back, err := vtlconf.Decode(bytes.NewReader(doc.Bytes()))
	if err != nil {
		return nil, err
	}

	if !conf.Matches(back) {
		return nil, merry.Errorf("addvtl: %s: document does not describe the library", conf.Name)
	}

	if err := srv.inv.AddLibrary(ctx, lib); err != nil {
		return nil, err
	}

	rec, err = srv.spool.Put(ctx, spool.KindVTL, &VTLSubmission{Conf: conf, Document: doc.String()})
	if err != nil {
		undo("addvtl", conf.Name, func(ctx context.Context) error {
			return srv.inv.RemoveLibrary(ctx, conf.Name)
		})

		return nil, err
	}

	glog.Infof("addvtl: %s (%d drives, %d slots) spooled as #%d", conf.Name, len(conf.Drives), conf.Slots, rec.Seq)

	return rec, nil
}

// AddDrive records a standalone drive and spools it.
func (srv *Server) AddDrive(ctx context.Context, req *form.DriveRequest) (rec *spool.Record, err error) {
	defer func() { srv.done(spool.KindDrive, err) }()

	if err := srv.inv.AddDrive(ctx, &inventory.Drive{Name: req.Name, Type: req.Type}); err != nil {
		return nil, err
	}

	rec, err = srv.spool.Put(ctx, spool.KindDrive, req)
	if err != nil {
		undo("adddrive", req.Name, func(ctx context.Context) error {
			return srv.inv.RemoveDrive(ctx, req.Name)
		})

		return nil, err
	}

	glog.Infof("adddrive: %s spooled as #%d", req.Name, rec.Seq)

	return rec, nil
}

// CartridgeMedia resolves the media of a cartridge request against the
// drives of lib. With no media chosen, a library whose drives share one
// media type gets that type.
func CartridgeMedia(lib *inventory.Library, m catalog.MediaCode) (catalog.MediaCode, error) {
	accepted := catalog.MediaForDrives(lib.DriveTypes())

	if m == 0 {
		if len(accepted) == 1 {
			return accepted[0].Code, nil
		}

		return 0, form.Invalid(form.ErrEmptyField, "voltype", "VCartridge type must be specified")
	}

	for _, media := range accepted {
		if media.Code == m {
			return m, nil
		}
	}

	return 0, form.Invalid(form.ErrOutOfRange, "voltype",
		fmt.Sprintf("VCartridge type is not supported by the drives of %s", lib.Name),
	)
}

// AddCartridges expands the labels of req, records the cartridges and
// spools the batch.
func (srv *Server) AddCartridges(ctx context.Context, req *form.CartridgeRequest) (batch *CartridgeBatch, err error) {
	defer func() { srv.done(spool.KindCartridge, err) }()

	if req.Count > srv.MaxCartridges() {
		return nil, form.Invalid(form.ErrOutOfRange, "nvolumes",
			fmt.Sprintf("Number of volumes cannot be greater than %d", srv.MaxCartridges()),
		)
	}

	lib, err := srv.inv.Library(ctx, req.Library)
	if err != nil {
		return nil, err
	}

	media, err := CartridgeMedia(lib, req.Media)
	if err != nil {
		return nil, err
	}

	labels, err := form.ExpandLabels(req.Label, req.Count, media, req.WORM)
	if err != nil {
		return nil, err
	}

	carts := make([]*inventory.Cartridge, 0, len(labels))
	for _, label := range labels {
		carts = append(carts, &inventory.Cartridge{
			Label:   label,
			Library: lib.Name,
			Media:   media,
			WORM:    req.WORM,
		})
	}

	if err := srv.inv.AddCartridges(ctx, carts); err != nil {
		return nil, err
	}

	batch = &CartridgeBatch{
		Library: lib.Name,
		Media:   media,
		WORM:    req.WORM,
		Labels:  labels,
	}

	rec, err := srv.spool.Put(ctx, spool.KindCartridge, batch)
	if err != nil {
		undo("addcartridges", lib.Name, func(ctx context.Context) error {
			return srv.inv.RemoveCartridges(ctx, labels)
		})

		return nil, err
	}

	batch.Seq = rec.Seq

	glog.Infof("addcartridges: %d to %s spooled as #%d", len(labels), lib.Name, rec.Seq)

	return batch, nil
}

func (srv *Server) Libraries(ctx context.Context) ([]*inventory.Library, error) {
	return srv.inv.Libraries(ctx)
}

func (srv *Server) Library(ctx context.Context, name string) (*inventory.Library, error) {
	return srv.inv.Library(ctx, name)
}

func (srv *Server) Drives(ctx context.Context) ([]*inventory.Drive, error) {
	return srv.inv.Drives(ctx, "")
}

func (srv *Server) Cartridges(ctx context.Context, library string) ([]*inventory.Cartridge, error) {
	if _, err := srv.inv.Library(ctx, library); err != nil {
		return nil, err
	}

	return srv.inv.Cartridges(ctx, library)
}

// Pending counts the spooled submissions of each kind.
func (srv *Server) Pending(ctx context.Context) (map[string]int, error) {
	return srv.spool.Pending(ctx)
}

// Stats returns a snapshot of the submission counters.
func (srv *Server) Stats() Snapshot {
	return srv.stats.Snapshot()
}

func (srv *Server) Shutdown() {
	glog.Info("shutdown: starting...")

	ctx := context.Background()

	if err := srv.spool.Close(ctx); err != nil {
		glog.Errorf("shutdown: spool: %v", err)
	}
	glog.Info("shutdown: spool closed")

	if err := srv.inv.Close(ctx); err != nil {
		glog.Errorf("shutdown: inventory: %v", err)
	}
	glog.Info("shutdown: inventory closed")

	glog.Infof("shutdown: stats %s", srv.stats.Snapshot())
}
