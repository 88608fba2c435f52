// Package minio provides a blobstore.Store implementation using the MinIO
// client, for keeping checkpoints and result manifests in S3-compatible
// object storage.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "checkpoints/")
//
// Works with any S3-compatible storage (Ceph, Garage, SeaweedFS) and needs
// no AWS dependencies.
package minio
