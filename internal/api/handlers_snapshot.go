package api

import (
	"errors"

	"github.com/fixbo/fixbo/internal/snapshot"
	"github.com/gofiber/fiber/v2"
)

// ExportSnapshot renders the whole store in the legacy key/value archive
// layout, one key per user or per job.
func (handler *Handler) ExportSnapshot(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	archive, err := handler.snapshotService.Export(user.ID)
	if err != nil {
		return respondSnapshotError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="fixbo-snapshot.json"`)
	return c.JSON(archive)
}

// ImportSnapshot restores a legacy archive. Accounts whose email already
// exists are skipped, everything else is written through the live store.
func (handler *Handler) ImportSnapshot(c *fiber.Ctx) error {
	archive := snapshot.Archive{}
	if err := c.BodyParser(&archive); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid archive payload")
	}

	handler.ensureDependencies()
	summary, err := handler.snapshotService.Import(archive)
	if err != nil {
		return respondSnapshotError(c, err)
	}
	return c.JSON(fiber.Map{"imported": summary})
}

func respondSnapshotError(c *fiber.Ctx, err error) error {
	var storageError *snapshot.StorageError
	if errors.As(err, &storageError) && storageError.Op == "decode" {
		return apiError(c, fiber.StatusBadRequest, storageError.Error())
	}
	return apiError(c, fiber.StatusInternalServerError, "snapshot failed")
}
