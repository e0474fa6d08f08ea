package capture

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/eventstream/pkg/eventstream"
)

func buildStream(t *testing.T, n int) []byte {
	t.Helper()
	var stream []byte
	for i := 0; i < n; i++ {
		wire, err := eventstream.EncodeFrame(map[string]eventstream.Value{
			"seq": eventstream.Int32Value(int32(i)),
		}, []byte("payload"))
		if err != nil {
			t.Fatalf("EncodeFrame() error = %v", err)
		}
		stream = append(stream, wire...)
	}
	return stream
}

func TestReplay(t *testing.T) {
	stream := buildStream(t, 5)

	var seqs []int64
	err := Replay(context.Background(), bytes.NewReader(stream), eventstream.NewStreamDecoder(),
		func(f *eventstream.Frame) error {
			v, _ := f.Header("seq")
			seqs = append(seqs, v.Int)
			return nil
		})
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if len(seqs) != 5 {
		t.Fatalf("replayed %d frames, want 5", len(seqs))
	}
	for i, seq := range seqs {
		if seq != int64(i) {
			t.Errorf("frame %d seq = %d", i, seq)
		}
	}
}

func TestReplayCallbackStop(t *testing.T) {
	stream := buildStream(t, 3)
	stop := errors.New("stop")

	calls := 0
	err := Replay(context.Background(), bytes.NewReader(stream), eventstream.NewStreamDecoder(),
		func(f *eventstream.Frame) error {
			calls++
			return stop
		})
	if !errors.Is(err, stop) {
		t.Fatalf("Replay() error = %v, want sentinel", err)
	}
	if calls != 1 {
		t.Errorf("callback called %d times, want 1", calls)
	}
}

func TestReplayTrailingBytes(t *testing.T) {
	stream := buildStream(t, 1)
	truncated := stream[:len(stream)-2]

	err := Replay(context.Background(), bytes.NewReader(truncated), eventstream.NewStreamDecoder(),
		func(*eventstream.Frame) error { return nil })
	if err == nil {
		t.Fatal("Replay(truncated capture) error = nil, want error")
	}
}

func TestReplayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Replay(ctx, bytes.NewReader(buildStream(t, 1)), eventstream.NewStreamDecoder(),
		func(*eventstream.Frame) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Replay() error = %v, want context.Canceled", err)
	}
}

func TestFileSource(t *testing.T) {
	stream := buildStream(t, 2)
	path := filepath.Join(t.TempDir(), "capture.bin")
	if err := os.WriteFile(path, stream, 0o644); err != nil {
		t.Fatal(err)
	}

	rc, err := FileSource{Path: path}.Open(context.Background())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	count := 0
	if err := Replay(context.Background(), rc, eventstream.NewStreamDecoder(),
		func(*eventstream.Frame) error { count++; return nil }); err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if count != 2 {
		t.Errorf("replayed %d frames, want 2", count)
	}
}

func TestFileSourceCancelled(t *testing.T) {
	stream := buildStream(t, 1)
	path := filepath.Join(t.TempDir(), "capture.bin")
	if err := os.WriteFile(path, stream, 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (FileSource{Path: path}).Open(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Open() error = %v, want context.Canceled", err)
	}
}

func TestFileSourceMissing(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "absent.bin")}.Open(context.Background())
	if err == nil {
		t.Fatal("Open(missing file) error = nil, want error")
	}
}

// fakeS3 serves one object from memory.
type fakeS3 struct {
	body []byte
	err  error
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func TestS3Source(t *testing.T) {
	stream := buildStream(t, 3)
	src := S3Source{Client: &fakeS3{body: stream}, Bucket: "captures", Key: "conn.bin"}

	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	count := 0
	if err := Replay(context.Background(), rc, eventstream.NewStreamDecoder(),
		func(*eventstream.Frame) error { count++; return nil }); err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if count != 3 {
		t.Errorf("replayed %d frames, want 3", count)
	}
}

func TestS3SourceError(t *testing.T) {
	src := S3Source{Client: &fakeS3{err: errors.New("denied")}, Bucket: "b", Key: "k"}
	if _, err := src.Open(context.Background()); err == nil {
		t.Fatal("Open() error = nil, want error")
	}
}
