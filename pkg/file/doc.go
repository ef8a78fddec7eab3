// Package file resolves references to stored binaries for the image and file
// validators.
//
// A Resolver answers two questions about a reference: what is the file called
// (Stat) and what does it contain (Open). The validators only need the
// original filename, to check its extension, and the image header, to measure
// its dimensions.
//
// # Backends
//
//   - LocalStorage: references are paths relative to a base directory; lookups
//     cannot escape it.
//   - S3Storage: references are object keys in one bucket, optionally under a
//     key prefix. The original filename is read from the "filename" object
//     metadata and falls back to the last key segment.
//   - MemoryStorage: files registered in code, for tests and embedding.
//
// Lookups block. Wrap a resolver with WithTimeout to bound each of them:
//
//	storage, err := file.NewLocalStorage("/var/files")
//	if err != nil {
//	    return err
//	}
//	resolver := file.WithTimeout(storage, 2*time.Second)
//
//	dims, err := file.ImageDimensions(ctx, resolver, "images/cover.png")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(dims.Width, dims.Height)
//
// # Extensions
//
// Extension returns the substring after the last "." of a name, without
// lowering its case: "report.tar.gz" has the extension "gz" and "README" has
// none.
//
// # Images
//
// DecodeDimensions understands GIF, JPEG and PNG. It reads the image header
// only, so large images are not loaded into memory.
//
// # Error Handling
//
// Missing files are reported as ErrFileNotFound, with ErrInvalidPath for
// references escaping the storage root. S3 failures are classified into
// ErrAccessDenied, ErrBucketNotFound, ErrRequestTimeout and friends; timeouts
// applied by WithTimeout surface as ErrOperationTimeout.
package file
