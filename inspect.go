package native

import (
	"bytes"
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/ZenLiuCN/fn"
)

// Exports lists the exported function symbols of a shared library file without loading it.
// ELF, Mach-O (the first slice of a universal file) and PE files are understood, exported data is left out.
func Exports(path string) (names []string, err error) {
	var magic [4]byte
	{
		var f *os.File
		if f, err = os.Open(path); err != nil {
			return
		}
		_, err = io.ReadFull(f, magic[:])
		fn.IgnoreClose(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnknownFormat, path, err)
		}
	}
	switch {
	case bytes.Equal(magic[:], []byte(elf.ELFMAG)):
		names, err = elfExports(path)
	case magic[0] == 'M' && magic[1] == 'Z':
		names, err = peExports(path)
	case isMacho(magic):
		names, err = machoExports(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

func isMacho(m [4]byte) bool {
	switch binary.BigEndian.Uint32(m[:]) {
	case macho.Magic32, macho.Magic64, macho.MagicFat, 0xcefaedfe, 0xcffaedfe:
		return true
	}
	return false
}

func elfExports(path string) (names []string, err error) {
	var f *elf.File
	if f, err = elf.Open(path); err != nil {
		return
	}
	defer fn.IgnoreClose(f)
	var syms []elf.Symbol
	if syms, err = f.DynamicSymbols(); err != nil {
		if errors.Is(err, elf.ErrNoSymbols) {
			return nil, nil
		}
		return
	}
	for _, s := range syms {
		if elf.ST_TYPE(s.Info) != elf.STT_FUNC || s.Section == elf.SHN_UNDEF {
			continue
		}
		switch elf.ST_BIND(s.Info) {
		case elf.STB_GLOBAL, elf.STB_WEAK:
			names = append(names, s.Name)
		}
	}
	return
}

func machoExports(path string) (names []string, err error) {
	var f *macho.File
	if f, err = macho.Open(path); err != nil {
		var fat *macho.FatFile
		if fat, err = macho.OpenFat(path); err != nil {
			return
		}
		defer fn.IgnoreClose(fat)
		if len(fat.Arches) == 0 {
			return nil, nil
		}
		f = fat.Arches[0].File
	} else {
		defer fn.IgnoreClose(f)
	}
	if f.Symtab == nil {
		return
	}
	const (
		nExt  = 0x01
		nType = 0x0e
		nSect = 0x0e
	)
	const instructions = 0x80000400 // S_ATTR_PURE_INSTRUCTIONS | S_ATTR_SOME_INSTRUCTIONS
	for _, s := range f.Symtab.Syms {
		if s.Type&nExt == 0 || s.Type&nType != nSect {
			continue
		}
		if s.Sect == 0 || int(s.Sect) > len(f.Sections) || f.Sections[s.Sect-1].Flags&instructions == 0 {
			continue
		}
		names = append(names, strings.TrimPrefix(s.Name, "_"))
	}
	return
}

func peExports(path string) (names []string, err error) {
	var f *pe.File
	if f, err = pe.Open(path); err != nil {
		return
	}
	defer fn.IgnoreClose(f)
	var dir pe.DataDirectory
	switch h := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		dir = h.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_EXPORT]
	case *pe.OptionalHeader64:
		dir = h.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_EXPORT]
	default:
		return nil, nil
	}
	if dir.VirtualAddress == 0 || dir.Size == 0 {
		return nil, nil
	}
	var d []byte
	if d, err = peData(f, dir.VirtualAddress); err != nil {
		return
	}
	if dir.Size < 40 || len(d) < 40 {
		return nil, fmt.Errorf("%w: truncated export directory", ErrUnknownFormat)
	}
	// IMAGE_EXPORT_DIRECTORY
	var (
		nFuncs = binary.LittleEndian.Uint32(d[20:])
		nNames = binary.LittleEndian.Uint32(d[24:])
	)
	var funcs, table, ords []byte
	if funcs, err = peTable(f, binary.LittleEndian.Uint32(d[28:]), nFuncs, 4); err != nil {
		return
	}
	if table, err = peTable(f, binary.LittleEndian.Uint32(d[32:]), nNames, 4); err != nil {
		return
	}
	if ords, err = peTable(f, binary.LittleEndian.Uint32(d[36:]), nNames, 2); err != nil {
		return
	}
	for i := uint32(0); i < nNames; i++ {
		o := uint32(binary.LittleEndian.Uint16(ords[i*2:]))
		if o >= nFuncs {
			return nil, fmt.Errorf("%w: export ordinal %d out of %d functions", ErrUnknownFormat, o, nFuncs)
		}
		if !peExecutable(f, binary.LittleEndian.Uint32(funcs[o*4:])) {
			continue
		}
		var s []byte
		if s, err = peData(f, binary.LittleEndian.Uint32(table[i*4:])); err != nil {
			return
		}
		if x := bytes.IndexByte(s, 0); x >= 0 {
			s = s[:x]
		}
		names = append(names, string(s))
	}
	return
}

// peTable returns n entries of size bytes at the relative virtual address.
func peTable(f *pe.File, rva, n, size uint32) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	d, err := peData(f, rva)
	if err != nil {
		return nil, err
	}
	if uint64(len(d)) < uint64(n)*uint64(size) {
		return nil, fmt.Errorf("%w: truncated export table at %x", ErrUnknownFormat, rva)
	}
	return d, nil
}

// peExecutable reports whether the address lies in code, forwarded and data exports do not.
func peExecutable(f *pe.File, rva uint32) bool {
	for _, s := range f.Sections {
		if rva >= s.VirtualAddress && rva < s.VirtualAddress+max(s.VirtualSize, s.Size) {
			return s.Characteristics&pe.IMAGE_SCN_MEM_EXECUTE != 0
		}
	}
	return false
}

// peData returns the section bytes starting at the relative virtual address.
func peData(f *pe.File, rva uint32) ([]byte, error) {
	for _, s := range f.Sections {
		if rva < s.VirtualAddress || rva >= s.VirtualAddress+max(s.VirtualSize, s.Size) {
			continue
		}
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		off := rva - s.VirtualAddress
		if off >= uint32(len(d)) {
			return nil, fmt.Errorf("%w: address %x outside section %s", ErrUnknownFormat, rva, s.Name)
		}
		return d[off:], nil
	}
	return nil, fmt.Errorf("%w: address %x outside sections", ErrUnknownFormat, rva)
}
