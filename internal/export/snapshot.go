package export

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mqtbench/cli/internal/circuit"
)

// SnapshotMagic opens every snapshot.
const SnapshotMagic = "MQTBSNAP"

// SnapshotVersion is the container version written by this package.
const SnapshotVersion byte = 1

// Snapshot is the decoded content of a snapshot file.
type Snapshot struct {
	ID      uuid.UUID
	Created time.Time
	// Header is the provenance header the circuit was exported with.
	Header  string
	Circuit *circuit.Circuit
}

type snapshotDoc struct {
	ID       string            `yaml:"id"`
	Created  time.Time         `yaml:"created"`
	Metadata map[string]string `yaml:"metadata"`
	Circuit  *circuit.Circuit  `yaml:"circuit"`
}

const headerKey = "mqt_bench"

func writeSnapshot(w io.Writer, c *circuit.Circuit, header string) error {
	doc := snapshotDoc{
		ID:       uuid.NewString(),
		Created:  now().UTC(),
		Metadata: map[string]string{headerKey: header},
		Circuit:  c,
	}

	if _, err := io.WriteString(w, SnapshotMagic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{SnapshotVersion}); err != nil {
		return err
	}

	zw := gzip.NewWriter(w)
	enc := yaml.NewEncoder(zw)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return zw.Close()
}

// ReadSnapshot decodes a snapshot written by WriteCircuit.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	br := bufio.NewReader(r)
	prefix := make([]byte, len(SnapshotMagic)+1)
	if _, err := io.ReadFull(br, prefix); err != nil {
		return nil, &ExporterError{Message: "Not a snapshot: the stream is too short.", Err: err}
	}
	if !bytes.Equal(prefix[:len(SnapshotMagic)], []byte(SnapshotMagic)) {
		return nil, &ExporterError{Message: "Not a snapshot: bad magic."}
	}
	if v := prefix[len(SnapshotMagic)]; v != SnapshotVersion {
		return nil, &ExporterError{Message: fmt.Sprintf("Unsupported snapshot version %d.", v)}
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, &ExporterError{Message: "Failed to decompress snapshot.", Err: err}
	}
	defer zr.Close()

	var doc snapshotDoc
	dec := yaml.NewDecoder(zr)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &ExporterError{Message: "Failed to decode snapshot.", Err: err}
	}
	if doc.Circuit == nil {
		return nil, &ExporterError{Message: "Snapshot holds no circuit."}
	}
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, &ExporterError{Message: "Snapshot has an invalid id.", Err: err}
	}
	return &Snapshot{
		ID:      id,
		Created: doc.Created,
		Header:  doc.Metadata[headerKey],
		Circuit: doc.Circuit,
	}, nil
}

// SnapshotYAML returns the circuit of a snapshot as YAML, for diffing.
func SnapshotYAML(r io.Reader) ([]byte, error) {
	s, err := ReadSnapshot(r)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(s.Circuit)
}
