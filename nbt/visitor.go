package nbt

// Visitor streams an NBT structure without materializing it as a Tag tree —
// useful for scanning large compounds/lists where only a few fields matter.
type Visitor interface {
	VisitByte(value int8) error
	VisitShort(value int16) error
	VisitInt(value int32) error
	VisitLong(value int64) error
	VisitFloat(value float32) error
	VisitDouble(value float64) error
	VisitByteArray(value []byte) error
	VisitString(value string) error
	VisitIntArray(value []int32) error
	VisitLongArray(value []int64) error

	// VisitListStart returns the Visitor to drive for each element, or nil
	// to skip the list's contents entirely.
	VisitListStart(elementType byte, length int) (Visitor, error)
	VisitListEnd() error

	// VisitCompoundStart returns the Visitor to drive for each entry, or
	// nil to skip the compound's contents entirely.
	VisitCompoundStart() (Visitor, error)
	// VisitCompoundEntry returns the Visitor to drive for this entry's
	// value, or nil to skip just that value.
	VisitCompoundEntry(name string, tagType byte) (Visitor, error)
	VisitCompoundEnd() error

	VisitEnd() error
}

// BaseVisitor no-ops every Visitor method and skips every list/compound by
// default; embed it to implement only the methods a particular walk cares
// about.
type BaseVisitor struct{}

func (BaseVisitor) VisitByte(int8) error                       { return nil }
func (BaseVisitor) VisitShort(int16) error                     { return nil }
func (BaseVisitor) VisitInt(int32) error                       { return nil }
func (BaseVisitor) VisitLong(int64) error                      { return nil }
func (BaseVisitor) VisitFloat(float32) error                   { return nil }
func (BaseVisitor) VisitDouble(float64) error                  { return nil }
func (BaseVisitor) VisitByteArray([]byte) error                { return nil }
func (BaseVisitor) VisitString(string) error                   { return nil }
func (BaseVisitor) VisitIntArray([]int32) error                { return nil }
func (BaseVisitor) VisitLongArray([]int64) error                { return nil }
func (BaseVisitor) VisitListStart(byte, int) (Visitor, error)   { return nil, nil }
func (BaseVisitor) VisitListEnd() error                         { return nil }
func (BaseVisitor) VisitCompoundStart() (Visitor, error)        { return nil, nil }
func (BaseVisitor) VisitCompoundEntry(string, byte) (Visitor, error) { return nil, nil }
func (BaseVisitor) VisitCompoundEnd() error                     { return nil }
func (BaseVisitor) VisitEnd() error                              { return nil }

// AcceptVisitor walks an already-decoded Tag tree, calling the matching
// Visitor method for each node. Returns immediately (nil error) if v is nil.
func AcceptVisitor(tag Tag, v Visitor) error {
	if v == nil {
		return nil
	}
	switch t := tag.(type) {
	case Byte:
		return v.VisitByte(int8(t))
	case Short:
		return v.VisitShort(int16(t))
	case Int:
		return v.VisitInt(int32(t))
	case Long:
		return v.VisitLong(int64(t))
	case Float:
		return v.VisitFloat(float32(t))
	case Double:
		return v.VisitDouble(float64(t))
	case ByteArray:
		return v.VisitByteArray([]byte(t))
	case String:
		return v.VisitString(string(t))
	case IntArray:
		return v.VisitIntArray([]int32(t))
	case LongArray:
		return v.VisitLongArray([]int64(t))
	case List:
		return acceptListVisitor(t, v)
	case Compound:
		return acceptCompoundVisitor(t, v)
	case End:
		return v.VisitEnd()
	default:
		return nil
	}
}

func acceptListVisitor(list List, v Visitor) error {
	elemVisitor, err := v.VisitListStart(list.ElementType, len(list.Elements))
	if err != nil {
		return err
	}
	if elemVisitor != nil {
		for _, elem := range list.Elements {
			if err := AcceptVisitor(elem, elemVisitor); err != nil {
				return err
			}
		}
	}
	return v.VisitListEnd()
}

func acceptCompoundVisitor(compound Compound, v Visitor) error {
	entryPoint, err := v.VisitCompoundStart()
	if err != nil {
		return err
	}
	if entryPoint != nil {
		for name, tag := range compound {
			entryVisitor, err := entryPoint.VisitCompoundEntry(name, tag.ID())
			if err != nil {
				return err
			}
			if entryVisitor != nil {
				if err := AcceptVisitor(tag, entryVisitor); err != nil {
					return err
				}
			}
		}
	}
	return v.VisitCompoundEnd()
}

// VisitReader streams tag, type by type, straight off r without building a
// Tag tree — the entry point for processing NBT too large to hold in memory
// at once.
func VisitReader(r *Reader, v Visitor, network bool) error {
	tagType, err := r.readByte()
	if err != nil {
		return err
	}
	if tagType == TagEnd {
		return v.VisitEnd()
	}
	if !network {
		if _, err := r.readString(); err != nil {
			return err
		}
	}
	return visitTagPayload(r, tagType, v)
}

// visitTagPayload reads one tag's payload from r, reporting it to v. A nil
// v reads and discards the payload instead (skipTagPayload), which is how
// a VisitListStart/VisitCompoundEntry "no, skip this" answer is honored
// without a separate code path at every call site.
func visitTagPayload(r *Reader, tagType byte, v Visitor) error {
	if v == nil {
		return skipTagPayload(r, tagType)
	}

	switch tagType {
	case TagEnd:
		return v.VisitEnd()
	case TagByte:
		val, err := r.readByte()
		if err != nil {
			return err
		}
		return v.VisitByte(int8(val))
	case TagShort:
		val, err := r.readShort()
		if err != nil {
			return err
		}
		return v.VisitShort(val)
	case TagInt:
		val, err := r.readInt()
		if err != nil {
			return err
		}
		return v.VisitInt(val)
	case TagLong:
		val, err := r.readLong()
		if err != nil {
			return err
		}
		return v.VisitLong(val)
	case TagFloat:
		val, err := r.readFloat()
		if err != nil {
			return err
		}
		return v.VisitFloat(val)
	case TagDouble:
		val, err := r.readDouble()
		if err != nil {
			return err
		}
		return v.VisitDouble(val)
	case TagByteArray:
		data, err := readVisitedByteArray(r)
		if err != nil {
			return err
		}
		return v.VisitByteArray(data)
	case TagString:
		val, err := r.readString()
		if err != nil {
			return err
		}
		return v.VisitString(val)
	case TagList:
		return visitList(r, v)
	case TagCompound:
		return visitCompound(r, v)
	case TagIntArray:
		data, err := readVisitedIntArray(r)
		if err != nil {
			return err
		}
		return v.VisitIntArray(data)
	case TagLongArray:
		data, err := readVisitedLongArray(r)
		if err != nil {
			return err
		}
		return v.VisitLongArray(data)
	default:
		return nil
	}
}

func readVisitedByteArray(r *Reader) ([]byte, error) {
	n, err := r.readInt()
	if err != nil {
		return nil, err
	}
	data := make([]byte, n)
	return data, r.readFull(data)
}

func readVisitedIntArray(r *Reader) ([]int32, error) {
	n, err := r.readInt()
	if err != nil {
		return nil, err
	}
	data := make([]int32, n)
	for i := range data {
		if data[i], err = r.readInt(); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func readVisitedLongArray(r *Reader) ([]int64, error) {
	n, err := r.readInt()
	if err != nil {
		return nil, err
	}
	data := make([]int64, n)
	for i := range data {
		if data[i], err = r.readLong(); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func visitList(r *Reader, v Visitor) error {
	elemType, err := r.readByte()
	if err != nil {
		return err
	}
	n, err := r.readInt()
	if err != nil {
		return err
	}
	elemVisitor, err := v.VisitListStart(elemType, int(n))
	if err != nil {
		return err
	}
	for range n {
		if err := visitTagPayload(r, elemType, elemVisitor); err != nil {
			return err
		}
	}
	return v.VisitListEnd()
}

func visitCompound(r *Reader, v Visitor) error {
	entryPoint, err := v.VisitCompoundStart()
	if err != nil {
		return err
	}

	for {
		tagType, err := r.readByte()
		if err != nil {
			return err
		}
		if tagType == TagEnd {
			return v.VisitCompoundEnd()
		}

		name, err := r.readString()
		if err != nil {
			return err
		}

		var entryVisitor Visitor
		if entryPoint != nil {
			if entryVisitor, err = entryPoint.VisitCompoundEntry(name, tagType); err != nil {
				return err
			}
		}
		if err := visitTagPayload(r, tagType, entryVisitor); err != nil {
			return err
		}
	}
}

// skipTagPayload reads past a tag's payload without reporting it anywhere,
// for subtrees a Visitor declined via a nil return.
func skipTagPayload(r *Reader, tagType byte) error {
	switch tagType {
	case TagEnd:
		return nil
	case TagByte:
		_, err := r.readByte()
		return err
	case TagShort:
		_, err := r.readShort()
		return err
	case TagInt:
		_, err := r.readInt()
		return err
	case TagLong:
		_, err := r.readLong()
		return err
	case TagFloat:
		_, err := r.readFloat()
		return err
	case TagDouble:
		_, err := r.readDouble()
		return err
	case TagByteArray:
		_, err := readVisitedByteArray(r)
		return err
	case TagString:
		_, err := r.readString()
		return err
	case TagList:
		return skipList(r)
	case TagCompound:
		return skipCompound(r)
	case TagIntArray:
		_, err := readVisitedIntArray(r)
		return err
	case TagLongArray:
		_, err := readVisitedLongArray(r)
		return err
	default:
		return nil
	}
}

func skipList(r *Reader) error {
	elemType, err := r.readByte()
	if err != nil {
		return err
	}
	n, err := r.readInt()
	if err != nil {
		return err
	}
	for range n {
		if err := skipTagPayload(r, elemType); err != nil {
			return err
		}
	}
	return nil
}

func skipCompound(r *Reader) error {
	for {
		entryType, err := r.readByte()
		if err != nil {
			return err
		}
		if entryType == TagEnd {
			return nil
		}
		if _, err := r.readString(); err != nil {
			return err
		}
		if err := skipTagPayload(r, entryType); err != nil {
			return err
		}
	}
}
