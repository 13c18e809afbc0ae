package render

const stylesheet = `<style>
.board { border: 1px solid black; display: inline-block; margin-top: 0.5rem; margin-bottom: 1rem; }
.row { border: 1px solid black; display: block; }
.col { border: 1px solid black; display: inline-flex; justify-content: center; align-items: center;
  width: 50px; height: 50px; max-width: 11vw; max-height: 11vw; }
.cell { border: 1px solid black; border-radius: 100%; width: 40px; height: 40px; max-width: 8vw; max-height: 8vw;
  display: inline-flex; justify-content: center; align-items: center; padding: 0; }
.cell.yellow { background-color: yellow; color: yellow; }
.cell.red { background-color: red; color: red; }
.cell.empty { background-color: gray; color: gray; cursor: pointer; }
.controls { margin: 0.5rem 0; }
</style>`

// liveScript keeps the page in sync with the server over /ws and sends the
// player's clicks back on the same socket.
const liveScript = `<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws;
  function connect() {
    ws = new WebSocket(proto + location.host + "/ws");
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      switch (msg.type) {
      case "cell_changed":
        var col = document.querySelector('.col[data-x="' + msg.cell.x + '"][data-y="' + msg.cell.y + '"]');
        if (col) col.innerHTML = msg.html;
        break;
      case "current_player_changed":
        var name = document.getElementById("current-player-name");
        if (name) name.textContent = msg.player;
        break;
      case "board_replaced":
        if (msg.target === "home") {
          var home = document.getElementById("home");
          if (home) home.outerHTML = msg.html;
        } else {
          var box = document.getElementById(msg.target);
          if (box) box.innerHTML = msg.html;
        }
        break;
      case "error":
        console.warn(msg.message);
        break;
      }
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  document.addEventListener("click", function (ev) {
    var el = ev.target.closest("[data-action]");
    if (!el || !ws || ws.readyState !== WebSocket.OPEN) return;
    var action = el.getAttribute("data-action");
    var msg = { type: action };
    if (action === "click_cell") {
      msg.x = parseInt(el.getAttribute("data-x"), 10);
      msg.y = parseInt(el.getAttribute("data-y"), 10);
    }
    ws.send(JSON.stringify(msg));
  });
  connect();
})();
</script>`
