package fileapp

import "fmt"

// ETag derives a content-identity token from a file's stat: inode, size,
// and modification time, joined by a fixed delimiter. Two stats with the
// same ETag are treated as the same content generation.
func ETag(fi FileInfo) string {
	return fmt.Sprintf("\"%x-%x-%x\"", fi.Inode, fi.Size, fi.ModTime)
}
