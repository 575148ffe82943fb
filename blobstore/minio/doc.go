// Package minio provides a blobstore.Store backed by the MinIO client.
//
// It works with MinIO and other S3-compatible services (Ceph, SeaweedFS,
// Garage) and does not pull in the AWS SDK.
//
//	store, err := minio.Dial("localhost:9000", "minioadmin", "minioadmin", false,
//	    "snapshots", "pointmerge/")
//	if err != nil {
//	    return err
//	}
//	err = snapshot.Publish(ctx, store, "merged-0001.pmrg", dst)
//
// Use NewStore to pass a preconfigured *minio.Client (custom region,
// transport or credentials provider).
package minio
