package server

import (
	"encoding/json"
	"io"

	"github.com/cwbudde/algo-guitar/guitar"
)

// The page plays integer samples divided by 256, so chords (which are not
// re-clamped) play louder than single keys.
const pagePrefix = `<html>
<head>
<meta charset="utf-8">
<title>Karplus-Strong guitar</title>
<script type="text/javascript">

var strings = `

const pageMiddle = `;
var song = `

const pageSuffix = `;

var sampleRate = 44100;
var volume = 0.1;

function init() {
  var ctx = new (window.AudioContext || window.webkitAudioContext)();
  var gain = ctx.createGain();
  gain.gain.value = volume;
  gain.connect(ctx.destination);

  var keys = {};
  var content = document.querySelector(".content");
  strings.forEach(function(tuple) {
    var keyCode = tuple[0].toUpperCase().charCodeAt(0);
    keys[keyCode] = tuple;
    var row = document.createElement("div");
    row.textContent = tuple[0] + ": " + tuple[1];
    content.appendChild(row);
  });

  function play(samples) {
    var buffer = ctx.createBuffer(1, samples.length, sampleRate);
    var data = buffer.getChannelData(0);
    for (var i = 0; i < samples.length; i++) {
      data[i] = samples[i] / 256.0;
    }
    var src = ctx.createBufferSource();
    src.buffer = buffer;
    src.connect(gain);
    src.start();
  }

  document.addEventListener("keydown", function(evt) {
    if (evt.keyCode in keys) {
      ctx.resume();
      play(keys[evt.keyCode][2]);
    }
  });

  var i = 0;
  function loop() {
    if (i < song.length) {
      play(song[i]);
      i = i + 1;
      window.setTimeout(loop, 1000);
    } else {
      i = 0;
    }
  }
  document.getElementById("song").addEventListener("click", function() {
    ctx.resume();
    loop();
  });
}

window.addEventListener("load", init, false);
</script>
</head>

<body>
  <div class="content"></div>
  <button id="song">Play Song</button>
</body>
</html>
`

// writePage renders the keyboard page with the key table and song embedded
// as JSON integer arrays.
func writePage(w io.Writer, table []guitar.KeyString, song [][]int) error {
	tableJSON, err := json.Marshal(table)
	if err != nil {
		return err
	}
	songJSON, err := json.Marshal(song)
	if err != nil {
		return err
	}
	for _, part := range [][]byte{[]byte(pagePrefix), tableJSON, []byte(pageMiddle), songJSON, []byte(pageSuffix)} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}
	return nil
}
