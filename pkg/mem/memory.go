// Package mem implements the 8080's 64 KiB linear byte-addressable memory.
package mem

// Size is the address space of the 8080: 64 KiB, addresses 0x0000-0xFFFF.
const Size = 1 << 16

// Memory is a flat 64 KiB byte array. It does not distinguish ROM from RAM;
// write-protection, if any, is the host's responsibility.
type Memory struct {
	bytes [Size]byte
}

// Read8 returns the byte at addr. Address arithmetic wraps mod 65536
// because addr is a uint16.
func (m *Memory) Read8(addr uint16) uint8 {
	return m.bytes[addr]
}

// Write8 stores v at addr.
func (m *Memory) Write8(addr uint16, v uint8) {
	m.bytes[addr] = v
}

// Read16 reads a little-endian 16-bit value: the byte at addr is the low
// byte, addr+1 is the high byte.
func (m *Memory) Read16(addr uint16) uint16 {
	lo := m.bytes[addr]
	hi := m.bytes[addr+1]
	return uint16(hi)<<8 | uint16(lo)
}

// Write16 stores v little-endian at addr, addr+1.
func (m *Memory) Write16(addr uint16, v uint16) {
	m.bytes[addr] = uint8(v)
	m.bytes[addr+1] = uint8(v >> 8)
}

// Load copies data into memory starting at base. The address wraps mod
// 65536, so bytes that run past 0xFFFF are written from 0x0000 onward,
// overwriting whatever is there.
func (m *Memory) Load(base uint16, data []byte) {
	for i, b := range data {
		m.bytes[base+uint16(i)] = b
	}
}

// Bytes returns the full backing array for disassembly/snapshotting.
func (m *Memory) Bytes() []byte {
	return m.bytes[:]
}
