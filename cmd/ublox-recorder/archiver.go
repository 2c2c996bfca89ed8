package main

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// archiveJob is one directory enqueued for compression. An empty Dir is the
// shutdown sentinel.
type archiveJob struct {
	ID  uuid.UUID
	Dir string
}

// archiveQueue is process-global so every StoreCfg shares one background
// worker, per spec §5: "a single background worker thread owns the
// compress/delete pipeline ... process-global to avoid spawning one worker
// per StoreCfg."
var (
	archiveQueue  = make(chan archiveJob, 64)
	archiveWG     sync.WaitGroup
	archiveOnce   sync.Once
	archiverStart = func() {
		archiveWG.Add(1)
		go archiveWorker()
	}
)

func ensureArchiver() {
	archiveOnce.Do(archiverStart)
}

// enqueueArchive schedules dir for tar.gz compression and deletion. Safe to
// call concurrently. The queue holds 64 pending jobs; once it is full the
// channel send blocks until the worker takes a job.
func enqueueArchive(dir string) {
	ensureArchiver()
	id := uuid.New()
	logger.WithFields(logrus.Fields{"job_id": id, "dir": dir}).Info("archiver: enqueued")
	archiveQueue <- archiveJob{ID: id, Dir: dir}
}

// shutdownArchiver sends the sentinel and waits for the worker to drain.
func shutdownArchiver() {
	archiveQueue <- archiveJob{}
	archiveWG.Wait()
}

func archiveWorker() {
	defer archiveWG.Done()
	for job := range archiveQueue {
		if job.Dir == "" {
			return
		}
		log := logger.WithFields(logrus.Fields{"job_id": job.ID, "dir": job.Dir})
		if err := archiveDir(job.Dir); err != nil {
			log.WithError(err).Error("archiver: compression failed, leaving source directory in place")
			continue
		}
		log.Info("archiver: compressed and removed source directory")
	}
}

// archiveDir compresses dir into "<dir>.tar.gz" alongside it and removes
// dir only once compression fully succeeds (§6: "source directory is
// removed iff compression succeeds").
func archiveDir(dir string) error {
	out := dir + ".tar.gz"
	f, err := os.Create(out)
	if err != nil {
		return err
	}

	if err := writeTarGz(f, dir); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(out)
		return err
	}
	return os.RemoveAll(dir)
}

func writeTarGz(w io.Writer, dir string) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = rel
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})
	if err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}
