// Package fs abstracts the file system used by blobstore.LocalStore.
//
// [LocalFS] forwards to the os package. [FaultyFS] wraps another
// FileSystem and injects write, sync, close and rename failures so tests
// can check that an interrupted Put never leaves a partial blob behind:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("snap-", fs.Fault{FailAfterBytes: 1024})
//	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(ffs))
package fs
