package health

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"

	"github.com/postflightdev/postflight/internal/logger"
)

const writeMarkerName = ".postflight-write-test"

var writeMarkerContent = []byte("postflight write test\n")

// PoolProber is the slice of the zpool adapter the checker consumes.
type PoolProber interface {
	Exists(ctx context.Context, pool string) (bool, error)
	Health(ctx context.Context, pool string) (string, bool, error)
	Scrub(ctx context.Context, pool string) error
}

// Mounter provides the mount primitives for the smoke test.
type Mounter interface {
	Mount(ctx context.Context, dataset, dir string) error
	Unmount(ctx context.Context, dir string) error
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(question string) bool
}

// ZFSChecker confirms the pool exists and reports healthy, offers an
// optional scrub, and smoke-tests the root dataset for writability under a
// scoped mount point.
type ZFSChecker struct {
	recorder
	pool      string
	zpool     PoolProber
	mounter   Mounter
	confirm   Confirmer
	mountBase string
}

// NewZFSChecker builds the storage-pool checker.
func NewZFSChecker(pool string, zpool PoolProber, mounter Mounter, confirm Confirmer, log *logger.Logger) *ZFSChecker {
	return &ZFSChecker{
		recorder:  newRecorder(DomainZFS, log),
		pool:      pool,
		zpool:     zpool,
		mounter:   mounter,
		confirm:   confirm,
		mountBase: os.TempDir(),
	}
}

// Domain implements Checker.
func (c *ZFSChecker) Domain() Domain {
	return DomainZFS
}

// Check runs the pool probes. Pool existence is a hard prerequisite; when
// it fails nothing else is attempted.
func (c *ZFSChecker) Check(ctx context.Context) Outcome {
	outcome := newOutcome(DomainZFS)

	exists, err := c.zpool.Exists(ctx, c.pool)
	switch {
	case err != nil:
		c.fail(&outcome, "pool exists", err.Error())
		return outcome
	case !exists:
		c.fail(&outcome, "pool exists", fmt.Sprintf("pool %s not found", c.pool))
		return outcome
	}
	c.pass(&outcome, "pool exists", fmt.Sprintf("pool %s is imported", c.pool))

	status, healthy, err := c.zpool.Health(ctx, c.pool)
	switch {
	case err != nil:
		c.fail(&outcome, "pool health", err.Error())
	case healthy:
		c.pass(&outcome, "pool health", fmt.Sprintf("pool %s is %s", c.pool, status))
	default:
		c.fail(&outcome, "pool health", fmt.Sprintf("pool %s reports %s", c.pool, status))
	}

	c.offerScrub(ctx, &outcome)
	c.smokeTest(ctx, &outcome)

	return outcome
}

// offerScrub asks before starting the scrub; a scrub walks the whole pool
// and can run for hours. Declining records nothing.
func (c *ZFSChecker) offerScrub(ctx context.Context, outcome *Outcome) {
	question := fmt.Sprintf("Run a scrub on pool %s? This can take a long time", c.pool)
	if !c.confirm.Confirm(question) {
		c.log.Info("scrub skipped")
		return
	}

	if err := c.zpool.Scrub(ctx, c.pool); err != nil {
		c.warn(outcome, "pool scrub", fmt.Sprintf("scrub could not be started: %v", err))
		return
	}
	c.pass(outcome, "pool scrub", fmt.Sprintf("scrub started on pool %s", c.pool))
}

// smokeTest mounts the root dataset under a uniquely named directory,
// writes a marker file and reads it back. Mount and unmount, create and
// remove are paired on every path so repeated runs never trip over
// leftovers. A failing mount is only a warning; the dataset may not exist
// yet at this stage of provisioning.
func (c *ZFSChecker) smokeTest(ctx context.Context, outcome *Outcome) {
	dataset := c.pool + "/ROOT/default"
	dir := filepath.Join(c.mountBase, "postflight-"+uuid.NewString())

	if err := os.Mkdir(dir, 0o755); err != nil {
		c.fail(outcome, "pool write test", fmt.Sprintf("cannot create scoped mount point: %v", err))
		return
	}
	defer func() {
		if err := os.Remove(dir); err != nil {
			c.log.Error(err, "scoped mount point left behind at "+dir)
		}
	}()

	if err := c.mounter.Mount(ctx, dataset, dir); err != nil {
		c.warn(outcome, "pool write test", fmt.Sprintf("cannot mount %s: %v", dataset, err))
		return
	}
	defer func() {
		if err := c.mounter.Unmount(ctx, dir); err != nil {
			c.log.Error(err, "scoped mount still mounted at "+dir)
		}
	}()

	marker := filepath.Join(dir, writeMarkerName)
	if err := renameio.WriteFile(marker, writeMarkerContent, 0o644); err != nil {
		c.fail(outcome, "pool write test", fmt.Sprintf("write to %s failed: %v", dataset, err))
		return
	}
	defer func() { _ = os.Remove(marker) }()

	data, err := os.ReadFile(marker)
	switch {
	case err != nil:
		c.fail(outcome, "pool write test", fmt.Sprintf("read-back from %s failed: %v", dataset, err))
	case !bytes.Equal(data, writeMarkerContent):
		c.fail(outcome, "pool write test", fmt.Sprintf("read-back from %s returned unexpected content", dataset))
	default:
		c.pass(outcome, "pool write test", fmt.Sprintf("%s is writable", dataset))
	}
}
