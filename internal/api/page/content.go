package page

const (
	contextTitle = "Contexte et Exploration"

	contextIntro = `Le projet **Detection illégale de bâtiment** vise à identifier automatiquement, à partir d'images aériennes ou satellites,
les constructions réalisées sans autorisation administrative.

Pour cela, nous utilisons un modèle YOLO pré-entraîné adapté à la détection d'indices architecturaux.`

	contextSources = `Les données utilisées dans ce projet proviennent de sources publiques telles que les images satellites de Google Earth
et les cartes cadastrales disponibles via les services de l'État. Ces données ont été prétraitées pour correspondre aux
besoins du modèle d'apprentissage.`

	contextModels = `Plusieurs approches ont été envisagées pour détecter les bâtiments illégaux, incluant :
- des réseaux de neurones convolutifs (CNN)
- des modèles pré-entraînés de segmentation comme U-Net
- des modèles de détection comme YOLOv5 et YOLOv8

Des comparaisons ont été faites selon la précision, le rappel et la vitesse d'exécution.`

	contextChoice = `Le modèle retenu est **YOLOv8**, car il présente un bon équilibre entre performance et rapidité,
et permet une détection temps réel avec un faible taux de faux positifs.`

	modelTitle = "Modele selectione"

	modelStepsManual = `**Étapes d'utilisation** :
1. Saisir la latitude et la longitude de la zone à analyser.
2. Cliquer sur **Analyser la zone avec YOLO**.`

	modelStepsMap = `**Étapes d'utilisation** :
1. Cliquer sur la carte pour sélectionner la zone à analyser.
2. Cliquer sur **Analyser la zone avec YOLO**.`

	analyzeLabel   = "Analyser la zone avec YOLO"
	analyzeRunning = "Analyse en cours..."
	mapPrompt      = "Cliquez sur la carte pour sélectionner une zone."
	selectedFormat = "Coordonnées sélectionnées : %s"
	lastClickText  = "Dernier point cliqué : %s"

	backendRetry      = "Le service de détection est momentanément indisponible, réessayez dans quelques instants."
	backendNoCoverage = "Aucune imagerie n'est disponible pour cette zone."
	backendInvalid    = "Coordonnées invalides : %s"
	backendFailed     = "L'analyse a échoué."

	demoTitle   = "Detection demo"
	demoIntro   = "Cliquez sur **Démarrer la démo** pour voir une analyse fictive d'un bâtiment illégal."
	demoButton  = "Démarrer la démo"
	demoSuccess = "Détection fictive terminée : zone illégale mise en évidence en rouge."

	assetLoadError = "Impossible de charger l'image %s."
)
