package eventstream

import "testing"

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{
			name: "empty",
			data: nil,
			want: 0x00000000,
		},
		{
			// The standard CRC32C check value.
			name: "check_value",
			data: []byte("123456789"),
			want: 0xE3069283,
		},
		{
			name: "single_byte",
			data: []byte{0x00},
			want: 0x527D5351,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Checksum(tc.data); got != tc.want {
				t.Errorf("Checksum() = %08x, want %08x", got, tc.want)
			}
		})
	}
}

func TestChecksumStable(t *testing.T) {
	data := []byte("the same input always hashes the same")
	first := Checksum(data)
	for i := 0; i < 10; i++ {
		if got := Checksum(data); got != first {
			t.Fatalf("Checksum() = %08x on call %d, want %08x", got, i+2, first)
		}
	}
}
