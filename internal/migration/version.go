package migration

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

// upScript is one embedded forward migration.
type upScript struct {
	name    string
	version uint
}

// upScripts lists the embedded forward migrations ordered by version.
func upScripts() ([]upScript, error) {
	entries, err := fs.ReadDir(embeddedMigrations, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	scripts := make([]upScript, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		version, ok := parseMigrationVersion(name)
		if !ok {
			return nil, fmt.Errorf("invalid migration filename: %s", name)
		}
		scripts = append(scripts, upScript{name: name, version: version})
	}
	if len(scripts) == 0 {
		return nil, errors.New("no embedded migrations found")
	}

	sort.Slice(scripts, func(i, j int) bool { return scripts[i].version < scripts[j].version })
	return scripts, nil
}

// LatestMigrationVersion is the version the migrate command brings a
// database to.
func LatestMigrationVersion() (uint, error) {
	scripts, err := upScripts()
	if err != nil {
		return 0, err
	}
	return scripts[len(scripts)-1].version, nil
}

// MigrationsChecksum fingerprints the embedded forward migrations. The schema
// gate compares it with the value recorded by the last migrate run, so an
// edited script is caught even when the version number did not move.
func MigrationsChecksum() (string, error) {
	scripts, err := upScripts()
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, s := range scripts {
		body, err := embeddedMigrations.ReadFile(path.Join(migrationsDir, s.name))
		if err != nil {
			return "", fmt.Errorf("read migration %s: %w", s.name, err)
		}
		fmt.Fprintf(h, "%s\x00", s.name)
		h.Write(body)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// parseMigrationVersion reads the numeric prefix of "000003_add_index.up.sql".
func parseMigrationVersion(name string) (uint, bool) {
	prefix, _, found := strings.Cut(name, "_")
	if !found || prefix == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(prefix, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
