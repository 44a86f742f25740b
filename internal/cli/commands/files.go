package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/printmarket-dev/printmarket/internal/cli/client"
	"github.com/printmarket-dev/printmarket/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewFilesCmd creates the files command group
func NewFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Upload and download job artwork",
	}

	cmd.AddCommand(newFilesUploadCmd())
	cmd.AddCommand(newFilesURLCmd())
	cmd.AddCommand(newFilesDownloadCmd())

	return cmd
}

func newFilesUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a job file (max 50 MB)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilesUpload(args[0], WithContext(cmd.Context()))
		},
	}
}

func runFilesUpload(path string, opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	result, err := uploadPath(o, path)
	if err != nil {
		return err
	}

	if handled, err := output.Encode(o.out, *o.format, result); handled {
		return err
	}

	fmt.Fprintf(o.out, "✓ Uploaded %s (%d bytes)\n", result.Filename, result.Size)
	fmt.Fprintf(o.out, "  Reference: %s\n", result.FileURL)
	return nil
}

// uploadPath opens a local file and uploads it as job artwork
func uploadPath(o *options, path string) (*client.UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	result, err := o.api.UploadJobFile(o.ctx, client.FilePart{
		Name:   filepath.Base(path),
		Size:   info.Size(),
		Reader: f,
	})
	if err != nil {
		return nil, withLoginHint(err)
	}
	return result, nil
}

func newFilesURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url <reference>",
		Short: "Print the download URL of a stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilesURL(args[0], WithContext(cmd.Context()))
		},
	}
}

func runFilesURL(ref string, opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(o.out, o.api.FileURL(ref))
	return nil
}

func newFilesDownloadCmd() *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "download <reference>",
		Short: "Download a stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilesDownload(args[0], dest, WithContext(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Destination path, '-' for stdout (defaults to the file's name)")

	return cmd
}

func runFilesDownload(ref, dest string, opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	if dest == "-" {
		if _, err := o.api.DownloadFile(o.ctx, ref, o.out); err != nil {
			return withLoginHint(err)
		}
		return nil
	}

	if dest == "" {
		dest = client.DownloadFilename(ref)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	n, err := o.api.DownloadFile(o.ctx, ref, f)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dest)
		return withLoginHint(err)
	}

	fmt.Fprintf(o.out, "✓ Saved %s (%d bytes)\n", dest, n)
	return nil
}
