package workspace

import "sync"

// Snapshot is the most recent state the editing surface reported: the
// serialized block document and the source generated from it, taken from the
// same workspace state.
type Snapshot struct {
	Document        string `json:"workspace_document"`
	GeneratedSource string `json:"generated_source"`
}

// Bridge adapts over the fact that the visual editing surface lives in the
// browser and may not be mounted yet. The surface pushes snapshots as the
// user edits; the orchestrator reads the last push at save time. An unmounted
// or not-yet-settled surface is a normal transient, reported through the ok
// return, never as an error.
type Bridge struct {
	mu          sync.Mutex
	mounted     bool
	hasSnapshot bool
	current     Snapshot
	seeded      string
}

func NewBridge() *Bridge {
	return &Bridge{}
}

// Read returns the current snapshot. ok is false while the surface is
// unmounted, or mounted but yet to report its first snapshot (the settling
// window right after a mount or a re-seed).
func (b *Bridge) Read() (Snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.mounted || !b.hasSnapshot {
		return Snapshot{}, false
	}
	return b.current, true
}

// Push records the latest surface state. A push implies the surface is
// mounted.
func (b *Bridge) Push(snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mounted = true
	b.hasSnapshot = true
	b.current = snap
}

// SetMounted flips the surface mount state. Mounting does not make Read
// succeed by itself: the surface still has to push its first snapshot.
// Unmounting drops the held snapshot so a stale document cannot be saved
// against whatever mounts next.
func (b *Bridge) SetMounted(mounted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mounted = mounted
	if !mounted {
		b.hasSnapshot = false
		b.current = Snapshot{}
	}
}

// Seed stages a document for the surface to re-mount against, used when a
// project is opened or imported. It invalidates the held snapshot: the next
// Read fails until the surface re-reads the seed and pushes again.
func (b *Bridge) Seed(document string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seeded = document
	b.hasSnapshot = false
	b.current = Snapshot{}
}

// Seeded returns the staged document for the surface to render.
func (b *Bridge) Seeded() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seeded
}

// Mounted reports the surface mount state.
func (b *Bridge) Mounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mounted
}
