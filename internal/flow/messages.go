package flow

// User-facing texts. These mirror the channel's audience language.
const (
	msgAskName        = "👤 *Ciao! Per iniziare, inserisci il tuo nome e cognome:*"
	msgAskNewName     = "Inserisci il nuovo nome e cognome:"
	msgAskInstagram   = "Inserisci il tuo profilo Instagram:"
	msgAskPhone       = "Inserisci il tuo numero di telefono (senza +39 e spazi):"
	msgBadPhone       = "Il numero di telefono deve contenere solo cifre. Riprova:"
	msgProfileSaved   = "🔔 *Informazioni di contatto aggiornate con successo!*"
	msgRegisterFirst  = "Per favore, completa le tue informazioni di contatto prima di procedere."
	msgAskBookName    = "Inserisci il nome del libro:"
	msgAskYear        = "Seleziona l'annualità del libro:"
	msgBadYear        = "Per favore, seleziona un'annualità valida dal menu:"
	msgAskSubject     = "Seleziona la materia:"
	msgBadSubject     = "Per favore, seleziona una materia valida dal menu:"
	msgAskFreeSubject = "Inserisci manualmente la materia:"
	msgAskCondition   = "Seleziona la condizione del libro:"
	msgBadCondition   = "Per favore, seleziona una condizione valida dal menu:"
	msgAskISBN        = "Inserisci l'ISBN (senza spazi e trattini):"
	msgAskPhotoChoice = "Vuoi aggiungere una foto del libro?"
	msgAskPhoto       = "Per favore, invia la foto del libro:"
	msgAskPrice       = "Inserisci il prezzo del libro (facoltativo) o seleziona 'Salta' per saltare:"
	msgConfirmed      = "📚 *Libro confermato e aggiunto con successo al canale!*"
	msgPublishFailed  = "⚠️ Non sono riuscito a pubblicare l'annuncio sul canale. Riprova tra qualche minuto."
	msgNoListings     = "Non hai nessun annuncio pubblicato."
	msgPickToDelete   = "📄 *I tuoi annunci pubblicati:*\nSeleziona un libro per eliminarlo."
	msgConfirmDelete  = "Sei sicuro di voler eliminare l'annuncio per il libro *%s*?"
	msgDeleted        = "🗑️ *Libro eliminato con successo dal canale!*"
	msgDeleteDenied   = "❌ *Codice non trovato o non hai il permesso di eliminare questo libro.*"
	msgDeleteFailed   = "⚠️ Non sono riuscito a rimuovere l'annuncio dal canale. Riprova tra qualche minuto."
	msgAskSearchISBN  = "Inserisci il codice ISBN del libro da cercare (senza spazi e trattini):"
	msgSearchHit      = "📚 Sì, il libro è in vendita nel canale: %s"
	msgSearchMiss     = "❌ Il libro non è in vendita nel canale."
	msgSaveFailed     = "⚠️ Non sono riuscito a salvare i tuoi dati. Riprova:"
	msgDone           = "Grazie! La tua conversazione è terminata."

	msgBtnHome         = "🏠 Torna alla home"
	msgBtnContactEdit  = "✏️ Modifica dati contatto"
	msgBtnStartListing = "📚 Aggiungi un nuovo libro"
	msgBtnViewListings = "📄 I miei annunci pubblicati"
	msgBtnSearchISBN   = "🔍 Cerca un libro"
	msgBtnChannel      = "🔗 Canale con i libri in vendita"
	msgBtnConfirm      = "✅ Conferma"
	msgBtnDelete       = "🗑️ Elimina questo annuncio"

	// priceSkip matches the reply button below case-insensitively.
	priceSkip      = "salta"
	photoChoiceYes = "sì"
)

var (
	yearRows = [][]string{
		{"Primo", "Secondo", "Terzo"},
		{"Quarto", "Quinto"},
		{"Primo biennio", "Secondo biennio"},
		{"Triennio", "Quinquennale"},
	}
	subjectRows = [][]string{
		{"#Italiano", "#Fisica", "#Storia"},
		{"#Geografia", "#Matematica", "#Scienze"},
		{"#Latino", "#Tecnologia", "#Musica"},
		{"#Arte e immagine", "#Inglese", "#Educazione civica"},
		{"#Educazione fisica", "#Religione", "#Altro"},
	}
	conditionRows = [][]string{
		{"Nuovo", "Come Nuovo"},
		{"Usato - Buono", "Usato - in condizioni accettabili"},
	}
	photoChoiceRows = [][]string{{"Sì", "No"}}
	priceRows       = [][]string{{"Salta"}}
)
