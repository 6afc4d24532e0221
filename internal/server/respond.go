package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

// User-visible messages. These are the only strings that ever reach a
// client; everything specific goes to the log.
const (
	msgDBConnection    = "Erreur serveur : Impossible de se connecter à la base de données"
	msgRequiredFields  = "Veuillez remplir tous les champs obligatoires"
	msgSaveFailed      = "Erreur serveur : Impossible d'enregistrer le message"
	msgSent            = "Message envoyé avec succès"
	msgFileType        = "Type de fichier non autorisé : "
	msgFileTooLarge    = "Fichier trop volumineux : "
	msgFileUpload      = "Erreur lors de l'upload du fichier : "
	msgFileSave        = "Erreur lors de l'enregistrement du fichier : "
	msgAppointmentSave = "Erreur lors de l'enregistrement du rendez-vous"
	msgAccessDenied    = "Accès refusé : Veuillez vous connecter"
	msgInvalidFileID   = "ID de fichier invalide"
	msgFileNotFoundDB  = "Fichier non trouvé dans la base de données"
	msgFileNotFound    = "Fichier non trouvé sur le serveur ou accès non autorisé."
	msgLoginFailed     = "Identifiants invalides"
	msgLoggedIn        = "Connexion réussie"
	msgLoggedOut       = "Déconnexion réussie"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// wantsJSON reports whether the client declared it accepts JSON, which
// switches the submission endpoints from redirect+flash to a JSON body.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode json response")
	}
}

func (s *Service) jsonError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, envelope{Success: false, Message: message})
}
