package fileparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/ppiankov/lqa/internal/lang"
	"github.com/ppiankov/lqa/internal/model"
)

const sampleTMX = `<?xml version="1.0" encoding="UTF-8"?>
<tmx version="1.4">
  <header srclang="en" datatype="plaintext" segtype="sentence" adminlang="en" o-tmf="test" creationtool="test" creationtoolversion="1"/>
  <body>
    <tu>
      <tuv xml:lang="en"><seg>Hello world.</seg></tuv>
      <tuv xml:lang="fr"><seg>Bonjour le monde.</seg></tuv>
    </tu>
    <tu>
      <tuv xml:lang="fr"><seg>Au revoir.</seg></tuv>
      <tuv xml:lang="en"><seg>Goodbye.</seg></tuv>
    </tu>
  </body>
</tmx>`

func TestTMX_RoundTrip(t *testing.T) {
	pairs, err := TMXParser{}.Parse([]byte(sampleTMX))
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, model.SegmentPair{ID: 1, Source: "Hello world.", Target: "Bonjour le monde.", SourceLang: "en", TargetLang: "fr"}, pairs[0])
	assert.Equal(t, model.SegmentPair{ID: 2, Source: "Goodbye.", Target: "Au revoir.", SourceLang: "en", TargetLang: "fr"}, pairs[1])
}

func TestTMX_SkipsUnitsWithoutTargetAndKeepsIDsGapless(t *testing.T) {
	doc := `<tmx><header srclang="en-US"/><body>
<tu><tuv xml:lang="en-US"><seg>One.</seg></tuv><tuv xml:lang="de-DE"><seg>Eins.</seg></tuv></tu>
<tu><tuv xml:lang="en-US"><seg>Two.</seg></tuv><tuv xml:lang="de-DE"><seg>   </seg></tuv></tu>
<tu><tuv xml:lang="en-US"><seg>Lonely.</seg></tuv></tu>
<tu><tuv xml:lang="en-US"><seg>Three.</seg></tuv><tuv xml:lang="de-DE"><seg>Drei.</seg></tuv></tu>
</body></tmx>`

	pairs, err := TMXParser{}.Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, 1, pairs[0].ID)
	assert.Equal(t, 2, pairs[1].ID)
	assert.Equal(t, "Three.", pairs[1].Source)
	assert.Equal(t, lang.Code("en"), pairs[1].SourceLang)
	assert.Equal(t, lang.Code("de"), pairs[1].TargetLang)
}

func TestTMX_SourceFallsBackToFirstVariant(t *testing.T) {
	doc := `<tmx><header srclang="*all*"/><body>
<tu><tuv lang="ES"><seg>Hola.</seg></tuv><tuv lang="EN"><seg>Hello.</seg></tuv></tu>
</body></tmx>`

	pairs, err := TMXParser{}.Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	assert.Equal(t, "Hola.", pairs[0].Source)
	assert.Equal(t, lang.Code("es"), pairs[0].SourceLang)
	assert.Equal(t, lang.Code("en"), pairs[0].TargetLang)
}

func TestTMX_SegTextIncludesInlineElementText(t *testing.T) {
	doc := `<tmx><header srclang="en"/><body>
<tu><tuv xml:lang="en"><seg>Press <ph x="1">{0}</ph> to &amp; go.</seg></tuv><tuv xml:lang="it"><seg>Premi <ph x="1">{0}</ph>.</seg></tuv></tu>
</body></tmx>`

	pairs, err := TMXParser{}.Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "Press {0} to & go.", pairs[0].Source)
	assert.Equal(t, "Premi {0}.", pairs[0].Target)
}

func TestTMX_Malformed(t *testing.T) {
	tests := map[string]string{
		"no units":   `<tmx></tmx>`,
		"empty body": `<tmx><header srclang="en"/><body></body></tmx>`,
		"not xml":    `plain text`,
		"broken xml": `<tmx><body><tu>`,
		"empty":      ``,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := TMXParser{}.Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrMalformedFile))

			var mfe *model.MalformedFileError
			require.True(t, errors.As(err, &mfe))
			assert.Equal(t, "TMX", mfe.Format)
		})
	}
}

const sampleXLIFF = `<?xml version="1.0" encoding="UTF-8"?>
<xliff version="1.2" xmlns="urn:oasis:names:tc:xliff:document:1.2">
  <file source-language="en-US" target-language="de-DE" datatype="plaintext" original="app.txt">
    <body>
      <trans-unit id="1">
        <source>Save the file.</source>
        <target>Speichern Sie die Datei.</target>
      </trans-unit>
      <group id="g1">
        <trans-unit id="2">
          <source>Open <g id="b">settings</g>.</source>
          <target>Öffnen Sie die <g id="b">Einstellungen</g>.</target>
        </trans-unit>
      </group>
      <trans-unit id="3">
        <source>Untranslated.</source>
      </trans-unit>
      <trans-unit id="4">
        <source>  </source>
        <target>Leer.</target>
      </trans-unit>
      <trans-unit id="5" translate="no">
        <source>ACME</source>
        <target>ACME</target>
      </trans-unit>
    </body>
  </file>
</xliff>`

func TestXLIFF_Parse(t *testing.T) {
	pairs, err := XLIFFParser{}.Parse([]byte(sampleXLIFF))
	require.NoError(t, err)
	require.Len(t, pairs, 3)

	assert.Equal(t, model.SegmentPair{ID: 1, Source: "Save the file.", Target: "Speichern Sie die Datei.", SourceLang: "en", TargetLang: "de"}, pairs[0])
	assert.Equal(t, "Open settings.", pairs[1].Source)
	assert.Equal(t, "Öffnen Sie die Einstellungen.", pairs[1].Target)
	assert.Equal(t, 3, pairs[2].ID)
	assert.Equal(t, "Untranslated.", pairs[2].Source)
	assert.Equal(t, "", pairs[2].Target)
}

func TestXLIFF_GroupTranslateNoSkipsNestedUnits(t *testing.T) {
	doc := `<xliff version="1.2">
  <file source-language="en" target-language="fr">
    <body>
      <group id="brand" translate="no">
        <trans-unit id="1"><source>ACME Cloud</source><target>ACME Cloud</target></trans-unit>
        <group id="inner">
          <trans-unit id="2"><source>ACME Edge</source><target>ACME Edge</target></trans-unit>
        </group>
      </group>
      <group id="ui">
        <trans-unit id="3"><source>Sign in.</source><target>Connectez-vous.</target></trans-unit>
      </group>
    </body>
  </file>
</xliff>`

	pairs, err := XLIFFParser{}.Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, model.SegmentPair{ID: 1, Source: "Sign in.", Target: "Connectez-vous.", SourceLang: "en", TargetLang: "fr"}, pairs[0])

	doc2 := `<xliff xmlns="urn:oasis:names:tc:xliff:document:2.0" version="2.0" srcLang="en" trgLang="fr">
  <file id="f1">
    <group id="g" translate="no">
      <unit id="u1"><segment><source>Skip.</source><target>Ignorer.</target></segment></unit>
    </group>
    <unit id="u2"><segment><source>Keep.</source><target>Garder.</target></segment></unit>
  </file>
</xliff>`

	pairs, err = XLIFFParser{}.Parse([]byte(doc2))
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "Keep.", pairs[0].Source)
	assert.Equal(t, 1, pairs[0].ID)
}

func TestXLIFF2_Parse(t *testing.T) {
	doc := `<xliff xmlns="urn:oasis:names:tc:xliff:document:2.0" version="2.0" srcLang="en" trgLang="ja">
  <file id="f1">
    <unit id="u1">
      <segment><source>First.</source><target>最初。</target></segment>
      <segment><source>Second.</source><target>二番目。</target></segment>
    </unit>
  </file>
</xliff>`

	pairs, err := XLIFFParser{}.Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, model.SegmentPair{ID: 2, Source: "Second.", Target: "二番目。", SourceLang: "en", TargetLang: "ja"}, pairs[1])
}

func TestXLIFF_NoFileElement(t *testing.T) {
	for _, doc := range []string{`<xliff version="1.2"></xliff>`, ``, `<tmx><body/></tmx>`} {
		_, err := XLIFFParser{}.Parse([]byte(doc))
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrMalformedFile)
	}
}

func TestXLIFF_InvalidXML(t *testing.T) {
	_, err := XLIFFParser{}.Parse([]byte(`<xliff><file source-language="en"><trans-unit><source>x</trans-unit>`))
	assert.ErrorIs(t, err, model.ErrMalformedFile)
}

func TestParse_UTF16WithBOM(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-16"?>` + sampleTMX[len(`<?xml version="1.0" encoding="UTF-8"?>`):]
	buf, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(doc))
	require.NoError(t, err)

	pairs, err := TMXParser{}.Parse(buf)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "Bonjour le monde.", pairs[0].Target)
}

func TestParse_DeclaredLatin1(t *testing.T) {
	doc := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<xliff><file source-language=\"en\" target-language=\"fr\"><body>" +
		"<trans-unit id=\"1\"><source>Coffee</source><target>Caf\xe9</target></trans-unit>" +
		"</body></file></xliff>")

	pairs, err := XLIFFParser{}.Parse(doc)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "Café", pairs[0].Target)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"memory.tmx", FormatTMX},
		{"UPPER.TMX", FormatTMX},
		{"strings.xlf", FormatXLIFF},
		{"strings.xliff", FormatXLIFF},
		{"project.sdlxliff", FormatXLIFF},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := DetectFormat("notes.docx")
	assert.ErrorIs(t, err, model.ErrUnsupportedFormat)
}

func TestParseFile_UnsupportedSkipsParsing(t *testing.T) {
	_, err := ParseFile("data.csv", []byte("<tmx></tmx>"))

	var ufe *model.UnsupportedFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "data.csv", ufe.Name)
}

func TestParseFile_DispatchesByExtension(t *testing.T) {
	pairs, err := ParseFile("demo.xlf", []byte(sampleXLIFF))
	require.NoError(t, err)
	assert.Len(t, pairs, 3)
}
