package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"blogfront/internal/service"
	"blogfront/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"
)

// formats image
var allowedCoverTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (h *Handlers) UploadCover(w http.ResponseWriter, r *http.Request) {
	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		return
	}
	if !allowedCoverTypes[detected.String()] {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		WriteError(w, "Ошибка при обработке файла", http.StatusInternalServerError)
		return
	}

	// stored type and extension follow the detected bytes, not the file name
	cover, err := h.ImageService.UploadCover(r.Context(), storage.CoverUpload{
		FileName:    header.Filename,
		ContentType: detected.String(),
		Extension:   detected.Extension(),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		if errors.Is(err, service.ErrStorageDisabled) {
			WriteError(w, "Загрузка обложек отключена", http.StatusServiceUnavailable)
			return
		}
		log.Printf("upload cover: %v", err)
		WriteError(w, "Ошибка загрузки изображения", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, cover, http.StatusCreated)
}

func (h *Handlers) DeleteCover(w http.ResponseWriter, r *http.Request) {
	objectName := mux.Vars(r)["object"]

	err := h.ImageService.DeleteCover(r.Context(), objectName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidObject):
			WriteError(w, "Неверное имя обложки", http.StatusBadRequest)
		case errors.Is(err, service.ErrStorageDisabled):
			WriteError(w, "Загрузка обложек отключена", http.StatusServiceUnavailable)
		default:
			log.Printf("delete cover: %v", err)
			WriteError(w, "Ошибка удаления изображения", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Обложка успешно удалена"}, http.StatusOK)
}
