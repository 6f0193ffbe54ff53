package repo

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-practice-service/internal/domain"
)

// schemaVersion is the migration level this build expects. EnsureSchema
// replays the steps between the persisted version and this one.
//
// v1: fold the legacy flat "quizzes" key into an "old-quizzes" bundle.
// v2: seed the preset bundles.
const schemaVersion = 2

const (
	presetBundleID   = "preset-bundle"
	scratchBundleID  = "scratch-bundle"
	legacyBundleID   = "old-quizzes"
	legacyBundleName = "Old Quizzes"
)

// Migrator applies one-time schema migrations. It replaces the old implicit
// migrate-in-constructor behavior with an explicit step guarded by a
// persisted version marker, so seeding runs exactly once instead of being
// re-decided from a heuristic sentinel on every start.
type Migrator struct {
	store   Store
	quizzes *QuizRepository
	bundles *BundleRepository
	sf      singleflight.Group
}

// NewMigrator builds a Migrator sharing the repositories' store and options.
func NewMigrator(store Store, opts ...Option) *Migrator {
	return &Migrator{
		store:   store,
		quizzes: NewQuizRepository(store, opts...),
		bundles: NewBundleRepository(store, opts...),
	}
}

// EnsureSchema brings the store up to the current schema version. It is
// idempotent and safe to call on every start; concurrent calls collapse into
// a single run.
func (m *Migrator) EnsureSchema(ctx context.Context) error {
	_, err, _ := m.sf.Do("ensure-schema", func() (interface{}, error) {
		return nil, m.ensureSchema(ctx)
	})
	return err
}

func (m *Migrator) ensureSchema(ctx context.Context) error {
	version, err := readCount(ctx, m.store, schemaVersionKey)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := m.migrateLegacyQuizzes(ctx); err != nil {
			return err
		}
		if err := writeCount(ctx, m.store, schemaVersionKey, 1); err != nil {
			return fmt.Errorf("write schema version: %w", err)
		}
	}
	if version < 2 {
		if err := m.seedPresetBundles(ctx); err != nil {
			return err
		}
		if err := writeCount(ctx, m.store, schemaVersionKey, 2); err != nil {
			return fmt.Errorf("write schema version: %w", err)
		}
	}
	return nil
}

// migrateLegacyQuizzes moves the pre-bundle flat quiz list into its own
// bundle and deletes the legacy key. A store without legacy data passes
// straight through.
func (m *Migrator) migrateLegacyQuizzes(ctx context.Context) error {
	legacy, err := readJSON[[]domain.Quiz](ctx, m.store, legacyQuizzesKey)
	if err != nil {
		return fmt.Errorf("read legacy quizzes: %w", err)
	}
	if len(legacy) == 0 {
		return nil
	}

	log.Printf("repo: migrating %d legacy quizzes into bundle %s", len(legacy), legacyBundleID)
	if _, err := m.bundles.Add(ctx, domain.QuizBundle{
		ID:   legacyBundleID,
		Name: legacyBundleName,
	}); err != nil {
		return err
	}
	for i := range legacy {
		legacy[i].QuizBundleID = legacyBundleID
	}
	if err := writeJSON(ctx, m.store, legacyBundleID, legacy); err != nil {
		return fmt.Errorf("write legacy bundle: %w", err)
	}
	if err := writeCount(ctx, m.store, countKey(legacyBundleID), len(legacy)); err != nil {
		return fmt.Errorf("write legacy bundle count: %w", err)
	}
	if err := m.store.Remove(ctx, legacyQuizzesKey); err != nil {
		return fmt.Errorf("remove legacy key: %w", err)
	}
	return nil
}

// seedPresetBundles installs the built-in onboarding bundles: one stocked
// with example questions and one empty scratch bundle. Preset bundles are
// stamped at the epoch so they sort after user bundles under newest-first
// ordering.
func (m *Migrator) seedPresetBundles(ctx context.Context) error {
	if _, err := m.bundles.GetByID(ctx, presetBundleID); err == nil {
		return nil
	}

	epoch := time.Unix(0, 0).UTC()
	presets := []domain.QuizBundle{
		{
			ID:          presetBundleID,
			Name:        "General Knowledge",
			Description: "Built-in example questions to try the practice mode with.",
			IsPreset:    true,
			CreatedAt:   epoch,
			UpdatedAt:   epoch,
		},
		{
			ID:          scratchBundleID,
			Name:        "Scratchpad",
			Description: "An empty bundle for quick experiments.",
			IsPreset:    true,
			CreatedAt:   epoch,
			UpdatedAt:   epoch,
		},
	}
	for _, bundle := range presets {
		if _, err := m.bundles.Add(ctx, bundle); err != nil {
			return err
		}
	}

	imported, skipped, err := m.quizzes.ImportText(ctx, presetQuizText, presetBundleID)
	if err != nil {
		return fmt.Errorf("seed preset quizzes: %w", err)
	}
	if len(skipped) > 0 {
		return fmt.Errorf("seed preset quizzes: %d block(s) failed to parse", len(skipped))
	}
	log.Printf("repo: seeded preset bundle with %d quizzes", imported)
	return nil
}

// presetQuizText is the seed question bank in the bulk-import format; it is
// run through the regular import path so the seed data exercises the same
// code as user imports.
const presetQuizText = `Which planet is known as the Red Planet?
A. Venus
B. Mars
C. Jupiter
D. Mercury,B;Which city is the capital of France?
A. London
B. Berlin
C. Paris
D. Madrid,C;How many continents are there on Earth?
A. Five
B. Six
C. Seven
D. Eight,C;Which ocean is the largest?
A. Atlantic
B. Indian
C. Arctic
D. Pacific,D;What is the chemical symbol for water?
A. CO2
B. H2O
C. O2
D. NaCl,B;Which language has the most native speakers?
A. English
B. Hindi
C. Mandarin Chinese
D. Spanish,C;In which year did the Second World War end?
A. 1943
B. 1944
C. 1945
D. 1946,C;Which organ pumps blood through the human body?
A. Lungs
B. Liver
C. Heart
D. Kidneys,C;What is the longest river in the world?
A. Amazon
B. Nile
C. Yangtze
D. Mississippi,B;Which country is home to the kangaroo?
A. South Africa
B. Brazil
C. Australia
D. India,C;How many sides does a hexagon have?
A. Five
B. Six
C. Seven
D. Eight,B;Which gas do plants absorb from the atmosphere?
A. Oxygen
B. Nitrogen
C. Carbon dioxide
D. Hydrogen,C;Who painted the Mona Lisa?
A. Vincent van Gogh
B. Leonardo da Vinci
C. Pablo Picasso
D. Claude Monet,B;Which is the smallest prime number?
A. Zero
B. One
C. Two
D. Three,C;Which two colors mix to make green?
A. Red and blue
B. Blue and yellow
C. Red and yellow
D. Blue and white,B;`
