package buffer

// readCache is a single contiguous read-ahead window per buffer (§4.4
// "Buffer"). A read is served from it only when the cache's revision
// still matches the buffer's nr_changes and the requested range falls
// entirely inside [offset, offset+len(data)).
type readCache struct {
	offset   int64
	data     []byte
	revision int64
	valid    bool
}

func (c *readCache) covers(offset int64, n int) bool {
	if !c.valid || n == 0 {
		return n == 0 && c.valid
	}
	end := offset + int64(n)
	return offset >= c.offset && end <= c.offset+int64(len(c.data))
}

func (c *readCache) copyFrom(offset int64, n int, dst []byte) int {
	start := offset - c.offset
	copy(dst[:n], c.data[start:start+int64(n)])
	return n
}

func (c *readCache) invalidate() {
	c.valid = false
}

func (c *readCache) set(offset int64, data []byte, revision int64) {
	c.offset = offset
	c.data = data
	c.revision = revision
	c.valid = true
}
